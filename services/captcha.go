package services

import (
	"context"
	"errors"
	"fmt"

	recaptcha "cloud.google.com/go/recaptchaenterprise/v2/apiv1"
	"cloud.google.com/go/recaptchaenterprise/v2/apiv1/recaptchaenterprisepb"
	"google.golang.org/api/option"

	"agencydash/config"
	"agencydash/dto"
)

var ErrCaptchaRejected = errors.New("reCAPTCHA verification failed")

type CaptchaAssessment struct {
	Token     string
	Action    string
	UserIP    string
	UserAgent string
}

type CaptchaVerifier interface {
	Verify(ctx context.Context, a CaptchaAssessment) (*dto.AssessmentResult, error)
}

// RecaptchaVerifier scores tokens with reCAPTCHA Enterprise.
type RecaptchaVerifier struct {
	projectID       string
	siteKey         string
	credentialsFile string
	minScore        float32
}

func NewRecaptchaVerifier(cfg *config.Config) *RecaptchaVerifier {
	return &RecaptchaVerifier{
		projectID:       cfg.Firebase.ProjectID,
		siteKey:         cfg.Recaptcha.SiteKey,
		credentialsFile: cfg.Recaptcha.CredentialsFile,
		minScore:        cfg.Recaptcha.MinScore,
	}
}

func (v *RecaptchaVerifier) Verify(ctx context.Context, a CaptchaAssessment) (*dto.AssessmentResult, error) {
	var opts []option.ClientOption
	if v.credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(v.credentialsFile))
	}
	client, err := recaptcha.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create reCAPTCHA client: %w", err)
	}
	defer client.Close()

	req := &recaptchaenterprisepb.CreateAssessmentRequest{
		Parent: fmt.Sprintf("projects/%s", v.projectID),
		Assessment: &recaptchaenterprisepb.Assessment{
			Event: &recaptchaenterprisepb.Event{
				Token:         a.Token,
				SiteKey:       v.siteKey,
				UserIpAddress: a.UserIP,
				UserAgent:     a.UserAgent,
			},
		},
	}

	response, err := client.CreateAssessment(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create assessment: %w", err)
	}
	return v.evaluate(response, a.Action)
}

func (v *RecaptchaVerifier) evaluate(response *recaptchaenterprisepb.Assessment, action string) (*dto.AssessmentResult, error) {
	props := response.GetTokenProperties()
	if props == nil || !props.GetValid() {
		return nil, fmt.Errorf("%w: invalid token %s", ErrCaptchaRejected, props.GetInvalidReason())
	}
	if action != "" && props.GetAction() != action {
		return nil, fmt.Errorf("%w: expected action %s, got %s", ErrCaptchaRejected, action, props.GetAction())
	}

	result := &dto.AssessmentResult{Action: props.GetAction()}
	if risk := response.GetRiskAnalysis(); risk != nil {
		result.Score = risk.GetScore()
		for _, reason := range risk.GetReasons() {
			result.Reasons = append(result.Reasons, reason.String())
		}
	}
	if result.Score < v.minScore {
		return result, fmt.Errorf("%w: score %.2f below %.2f", ErrCaptchaRejected, result.Score, v.minScore)
	}
	return result, nil
}
