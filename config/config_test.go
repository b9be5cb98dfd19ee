package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agencydash/model"
)

func baseEnv() map[string]string {
	return map[string]string{
		"JWT_SECRET_KEY":         "access",
		"JWT_REFRESH_SECRET_KEY": "refresh",
		"STORE_DRIVER":           "memory",
	}
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(env.Options{Environment: baseEnv()})
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 60*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, 5, cfg.LoginGuard.MaxFailures)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.False(t, cfg.Recaptcha.Enabled)
	assert.Empty(t, cfg.Report.PDFFontFile)

	vars := baseEnv()
	vars["PDF_FONT_FILE"] = "/fonts/DejaVuSans.ttf"
	cfg, err = Parse(env.Options{Environment: vars})
	require.NoError(t, err)
	assert.Equal(t, "/fonts/DejaVuSans.ttf", cfg.Report.PDFFontFile)
}

func TestParse_Validation(t *testing.T) {
	cases := map[string]map[string]string{
		"missing secrets":     {"STORE_DRIVER": "memory"},
		"unknown driver":      {"STORE_DRIVER": "postgres"},
		"firestore w/o creds": {"STORE_DRIVER": "firestore"},
		"zero failures":       {"LOGIN_MAX_FAILURES": "0"},
		"captcha w/o key":     {"RECAPTCHA_ENABLED": "true"},
	}
	for name, overrides := range cases {
		t.Run(name, func(t *testing.T) {
			vars := baseEnv()
			if name == "missing secrets" {
				vars = map[string]string{}
			}
			for k, v := range overrides {
				vars[k] = v
			}
			_, err := Parse(env.Options{Environment: vars})
			assert.Error(t, err)
		})
	}
}

func TestDashboardOverrides(t *testing.T) {
	vars := baseEnv()
	vars["SUPER_ADMIN_EMAILS"] = "Boss@Agency.test, both@agency.test"
	vars["PRODUCTION_INCHARGE_EMAILS"] = "prod@agency.test,both@agency.test,"

	cfg, err := Parse(env.Options{Environment: vars})
	require.NoError(t, err)

	overrides := cfg.DashboardOverrides()
	assert.Equal(t, model.DashboardSuperAdmin, overrides["boss@agency.test"])
	assert.Equal(t, model.DashboardProductionIncharge, overrides["prod@agency.test"])
	assert.Equal(t, model.DashboardSuperAdmin, overrides["both@agency.test"])
	assert.Len(t, overrides, 3)
}

func TestNewLogger(t *testing.T) {
	cfg := &Config{LogLevel: "debug", LogFormat: "json"}
	logger := cfg.NewLogger()
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	cfg = &Config{LogLevel: "chatty"}
	assert.Equal(t, logrus.InfoLevel, cfg.NewLogger().GetLevel())
}
