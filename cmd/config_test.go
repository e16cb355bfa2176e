package cmd

import (
	"log/slog"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestParseSlogLevel(t *testing.T) {
	cases := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{" info ", slog.LevelInfo},
		{"-4", slog.LevelDebug},
		{"8", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, parseSlogLevel(tc.input, slog.LevelInfo), "input %q", tc.input)
	}
}

func TestRuleExcludesMergeFlagAndConfig(t *testing.T) {
	viper.Set(excludeConfigKey, []string{`_test\.go$`})
	viper.Set(ruleExcludeKey, map[string][]string{"incdec": {`/generated/`}})

	t.Cleanup(func() {
		viper.Set(excludeConfigKey, []string{})
		viper.Set(ruleExcludeKey, map[string][]string{})
	})

	excludes := ruleExcludes()
	require.Equal(t, []string{`_test\.go$`}, excludes["*"])
	require.Equal(t, []string{`/generated/`}, excludes["incdec"])
}

func TestConfigDefaults(t *testing.T) {
	require.Equal(t, defaultResultsDir, viper.GetString(outputFlagName))
	require.Equal(t, defaultParallel, viper.GetInt(parallelConfigKey))
	require.Equal(t, defaultLogMaxSize, viper.GetInt(logMaxSizeKey))
}
