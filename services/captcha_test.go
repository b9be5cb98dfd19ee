package services

import (
	"testing"

	"cloud.google.com/go/recaptchaenterprise/v2/apiv1/recaptchaenterprisepb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assessment(valid bool, action string, score float32) *recaptchaenterprisepb.Assessment {
	return &recaptchaenterprisepb.Assessment{
		TokenProperties: &recaptchaenterprisepb.TokenProperties{Valid: valid, Action: action},
		RiskAnalysis:    &recaptchaenterprisepb.RiskAnalysis{Score: score},
	}
}

func TestRecaptchaVerifier_Evaluate(t *testing.T) {
	v := &RecaptchaVerifier{minScore: 0.5}

	result, err := v.evaluate(assessment(true, "login", 0.9), "login")
	require.NoError(t, err)
	assert.Equal(t, "login", result.Action)
	assert.InDelta(t, 0.9, result.Score, 0.001)

	_, err = v.evaluate(assessment(false, "login", 0.9), "login")
	assert.ErrorIs(t, err, ErrCaptchaRejected)

	_, err = v.evaluate(assessment(true, "signup", 0.9), "login")
	assert.ErrorIs(t, err, ErrCaptchaRejected)

	result, err = v.evaluate(assessment(true, "login", 0.1), "login")
	assert.ErrorIs(t, err, ErrCaptchaRejected)
	require.NotNil(t, result)
	assert.InDelta(t, 0.1, result.Score, 0.001)

	_, err = v.evaluate(&recaptchaenterprisepb.Assessment{}, "")
	assert.ErrorIs(t, err, ErrCaptchaRejected)

	_, err = v.evaluate(assessment(true, "anything", 0.7), "")
	assert.NoError(t, err)
}
