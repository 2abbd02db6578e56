package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test data constants
const (
	testTemplateContent = `<r:author:name /> wrote <r:title />`
	testInvalidContent  = "line one\n<r:author>unclosed"
	testExpectedOutput  = "John Long wrote First Post"
	testFixturesContent = `
authors:
  - login: john
    name: John Long
    email: john@example.com
pages:
  - url: /
    title: Home
    slug: /
    created_by: john
    published_at: 2008-01-01T10:00:00Z
  - url: /articles/first/
    parent: /
    title: First Post
    slug: first
    created_by: john
    published_at: 2008-01-05T10:00:00Z
`
	testBlogTemplate = `<r:blogtags:reddit />`
	testBlogExpected = `<a href="http://reddit.com/submit?url=https://blog.example.org/articles/first/&title=First+Post"><img src="/images/blogtags/reddit.gif" title="add to reddit"/></a>`
)

// setupTestData creates test files in a temp directory
func setupTestData(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()

	files := map[string]string{
		"template.html": testTemplateContent,
		"invalid.html":  testInvalidContent,
		"blog.html":     testBlogTemplate,
		"fixtures.yaml": testFixturesContent,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), []byte(content), FilePermissions))
	}

	return tmpDir
}

// writeSQLiteConfig writes a config pointing at a sqlite file in dir.
func writeSQLiteConfig(t *testing.T, dir string) string {
	t.Helper()
	config := "store:\n  driver: sqlite\n  dsn: " + filepath.Join(dir, "site.db") +
		"\nsite:\n  scheme: https\n  host: blog.example.org\nlog_level: error\n"
	path := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(config), FilePermissions))
	return path
}

// ==================== run() dispatch tests ====================

func TestRun_NoArgs_ShowsHelp(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := run(nil, strings.NewReader(""), stdout, stderr)

	assert.Equal(t, ExitCodeSuccess, exitCode)
	assert.Contains(t, stdout.String(), CLIName)
	assert.Contains(t, stdout.String(), CmdNameRender)
}

func TestRun_UnknownCommand(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := run([]string{"publish"}, strings.NewReader(""), stdout, stderr)

	assert.Equal(t, ExitCodeUsageError, exitCode)
	assert.Contains(t, stdout.String(), ErrMsgUnknownCommand)
	assert.Contains(t, stdout.String(), "publish")
}

func TestRun_VersionCommand(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := run([]string{CmdNameVersion}, strings.NewReader(""), stdout, stderr)

	assert.Equal(t, ExitCodeSuccess, exitCode)
	assert.Contains(t, stdout.String(), "go-radtags version")
}

// ==================== Help command tests ====================

func TestHelp_Commands(t *testing.T) {
	tests := []struct {
		cmd      string
		expected string
	}{
		{CmdNameRender, HelpRenderUsage},
		{CmdNameValidate, HelpValidateUsage},
		{CmdNameSeed, HelpSeedUsage},
		{CmdNameTags, HelpTagsUsage},
		{CmdNameVersion, HelpVersionUsage},
		{CmdNameHelp, HelpHelpUsage},
	}

	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			stdout := &bytes.Buffer{}

			exitCode := runHelp([]string{tt.cmd}, stdout)

			assert.Equal(t, ExitCodeSuccess, exitCode)
			assert.Contains(t, stdout.String(), tt.expected)
		})
	}
}

func TestHelp_MainHelp(t *testing.T) {
	stdout := &bytes.Buffer{}

	exitCode := runHelp(nil, stdout)

	assert.Equal(t, ExitCodeSuccess, exitCode)
	assert.Contains(t, stdout.String(), HelpMainUsage)
}

// ==================== Render command tests ====================

func TestRender_WithFixtures(t *testing.T) {
	tmpDir := setupTestData(t)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := run([]string{
		CmdNameRender,
		"-t", filepath.Join(tmpDir, "template.html"),
		"-f", filepath.Join(tmpDir, "fixtures.yaml"),
		"-p", "/articles/first/",
	}, strings.NewReader(""), stdout, stderr)

	assert.Equal(t, ExitCodeSuccess, exitCode, stderr.String())
	assert.Equal(t, testExpectedOutput, stdout.String())
}

func TestRender_FromStdin(t *testing.T) {
	tmpDir := setupTestData(t)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := run([]string{
		CmdNameRender,
		"--template", InputSourceStdin,
		"--fixtures", filepath.Join(tmpDir, "fixtures.yaml"),
		"--page", "/",
	}, strings.NewReader(`<r:title />`), stdout, stderr)

	assert.Equal(t, ExitCodeSuccess, exitCode, stderr.String())
	assert.Equal(t, "Home", stdout.String())
}

func TestRender_ToFile(t *testing.T) {
	tmpDir := setupTestData(t)
	outputPath := filepath.Join(tmpDir, "out.html")
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := run([]string{
		CmdNameRender,
		"-t", filepath.Join(tmpDir, "template.html"),
		"-f", filepath.Join(tmpDir, "fixtures.yaml"),
		"-p", "/articles/first/",
		"-o", outputPath,
	}, strings.NewReader(""), stdout, stderr)

	require.Equal(t, ExitCodeSuccess, exitCode, stderr.String())
	assert.Empty(t, stdout.String())

	content, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, testExpectedOutput, string(content))
}

func TestRender_WithoutPage(t *testing.T) {
	tmpDir := setupTestData(t)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := run([]string{
		CmdNameRender,
		"-t", filepath.Join(tmpDir, "template.html"),
	}, strings.NewReader(""), stdout, stderr)

	assert.Equal(t, ExitCodeSuccess, exitCode, stderr.String())
	assert.Equal(t, " wrote ", stdout.String())
}

func TestRender_Errors(t *testing.T) {
	tmpDir := setupTestData(t)

	tests := []struct {
		name     string
		args     []string
		exitCode int
		errMsg   string
	}{
		{
			name:     "missing template flag",
			args:     []string{CmdNameRender},
			exitCode: ExitCodeUsageError,
			errMsg:   ErrMsgMissingTemplate,
		},
		{
			name:     "unknown flag",
			args:     []string{CmdNameRender, "-x"},
			exitCode: ExitCodeUsageError,
			errMsg:   ErrMsgInvalidFlags,
		},
		{
			name:     "missing template file",
			args:     []string{CmdNameRender, "-t", filepath.Join(tmpDir, "nope.html")},
			exitCode: ExitCodeInputError,
			errMsg:   ErrMsgReadFileFailed,
		},
		{
			name:     "missing config file",
			args:     []string{CmdNameRender, "-t", filepath.Join(tmpDir, "template.html"), "-c", filepath.Join(tmpDir, "nope.yaml")},
			exitCode: ExitCodeInputError,
			errMsg:   ErrMsgConfigFailed,
		},
		{
			name: "unknown page",
			args: []string{CmdNameRender, "-t", filepath.Join(tmpDir, "template.html"),
				"-f", filepath.Join(tmpDir, "fixtures.yaml"), "-p", "/missing/"},
			exitCode: ExitCodeInputError,
			errMsg:   ErrMsgPageNotFound,
		},
		{
			name:     "invalid template",
			args:     []string{CmdNameRender, "-t", filepath.Join(tmpDir, "invalid.html")},
			exitCode: ExitCodeError,
			errMsg:   ErrMsgRenderFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}

			exitCode := run(tt.args, strings.NewReader(""), stdout, stderr)

			assert.Equal(t, tt.exitCode, exitCode)
			assert.Contains(t, stderr.String(), tt.errMsg)
		})
	}
}

// ==================== Seed command tests ====================

func TestSeed_ThenRenderFromSQLite(t *testing.T) {
	tmpDir := setupTestData(t)
	configPath := writeSQLiteConfig(t, tmpDir)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	exitCode := run([]string{
		CmdNameSeed,
		"-c", configPath,
		"-f", filepath.Join(tmpDir, "fixtures.yaml"),
	}, strings.NewReader(""), stdout, stderr)
	require.Equal(t, ExitCodeSuccess, exitCode, stderr.String())

	stdout.Reset()
	stderr.Reset()
	exitCode = run([]string{
		CmdNameRender,
		"-c", configPath,
		"-t", filepath.Join(tmpDir, "blog.html"),
		"-p", "/articles/first/",
	}, strings.NewReader(""), stdout, stderr)

	require.Equal(t, ExitCodeSuccess, exitCode, stderr.String())
	assert.Equal(t, testBlogExpected, stdout.String())
}

func TestSeed_MissingFixtures(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := run([]string{CmdNameSeed}, strings.NewReader(""), stdout, stderr)

	assert.Equal(t, ExitCodeUsageError, exitCode)
	assert.Contains(t, stderr.String(), ErrMsgMissingFixtures)
}

func TestSeed_InvalidFixtures(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := run([]string{CmdNameSeed, "-f", InputSourceStdin},
		strings.NewReader("pages:\n  - url: /x/\n    created_by: ghost\n"), stdout, stderr)

	assert.NotEqual(t, ExitCodeSuccess, exitCode)
	assert.Contains(t, stderr.String(), ErrMsgSeedFailed)
}

func TestSeed_InvalidLogLevel(t *testing.T) {
	tmpDir := setupTestData(t)
	configPath := filepath.Join(tmpDir, "bad.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("log_level: chatty\n"), FilePermissions))
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := run([]string{CmdNameSeed, "-c", configPath, "-f", filepath.Join(tmpDir, "fixtures.yaml")},
		strings.NewReader(""), stdout, stderr)

	assert.Equal(t, ExitCodeInputError, exitCode)
	assert.Contains(t, stderr.String(), ErrMsgInvalidLogLevel)
}

// ==================== Validate command tests ====================

func TestValidate_ValidTemplate(t *testing.T) {
	tmpDir := setupTestData(t)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := run([]string{CmdNameValidate, "-t", filepath.Join(tmpDir, "template.html")},
		strings.NewReader(""), stdout, stderr)

	assert.Equal(t, ExitCodeSuccess, exitCode)
	assert.Contains(t, stdout.String(), ValidationTextSuccess)
}

func TestValidate_InvalidTemplate(t *testing.T) {
	tmpDir := setupTestData(t)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := run([]string{CmdNameValidate, "-t", filepath.Join(tmpDir, "invalid.html")},
		strings.NewReader(""), stdout, stderr)

	assert.Equal(t, ExitCodeValidationError, exitCode)
	assert.Contains(t, stdout.String(), "Template is invalid")
	assert.Contains(t, stdout.String(), "line 2")
}

func TestValidate_JSONOutput(t *testing.T) {
	tmpDir := setupTestData(t)

	t.Run("valid", func(t *testing.T) {
		stdout := &bytes.Buffer{}
		exitCode := run([]string{CmdNameValidate, "-t", filepath.Join(tmpDir, "template.html"), "-F", OutputFormatJSON},
			strings.NewReader(""), stdout, &bytes.Buffer{})

		assert.Equal(t, ExitCodeSuccess, exitCode)
		var out validationOutput
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
		assert.True(t, out.Valid)
		assert.Empty(t, out.Message)
	})

	t.Run("invalid", func(t *testing.T) {
		stdout := &bytes.Buffer{}
		exitCode := run([]string{CmdNameValidate, "-t", filepath.Join(tmpDir, "invalid.html"), "--format", OutputFormatJSON},
			strings.NewReader(""), stdout, &bytes.Buffer{})

		assert.Equal(t, ExitCodeValidationError, exitCode)
		var out validationOutput
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
		assert.False(t, out.Valid)
		assert.NotEmpty(t, out.Message)
		assert.Equal(t, 2, out.Line)
	})
}

func TestValidate_InvalidFormat(t *testing.T) {
	tmpDir := setupTestData(t)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := run([]string{CmdNameValidate, "-t", filepath.Join(tmpDir, "template.html"), "-F", "xml"},
		strings.NewReader(""), stdout, stderr)

	assert.Equal(t, ExitCodeUsageError, exitCode)
	assert.Contains(t, stderr.String(), ErrMsgInvalidFormat)
}

// ==================== Tags command tests ====================

func TestTags_Text(t *testing.T) {
	stdout := &bytes.Buffer{}

	exitCode := run([]string{CmdNameTags}, strings.NewReader(""), stdout, &bytes.Buffer{})

	assert.Equal(t, ExitCodeSuccess, exitCode)
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	assert.Contains(t, lines, "author:gravatar_url")
	assert.Contains(t, lines, "authors:each:name")
	assert.Contains(t, lines, "blogtags:technorati")
}

func TestTags_JSON(t *testing.T) {
	stdout := &bytes.Buffer{}

	exitCode := run([]string{CmdNameTags, "-F", OutputFormatJSON}, strings.NewReader(""), stdout, &bytes.Buffer{})

	assert.Equal(t, ExitCodeSuccess, exitCode)
	var tags []string
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &tags))
	assert.Contains(t, tags, "pages:each")
}

// ==================== Version command tests ====================

func TestVersion_JSON(t *testing.T) {
	stdout := &bytes.Buffer{}

	exitCode := run([]string{CmdNameVersion, "-F", OutputFormatJSON}, strings.NewReader(""), stdout, &bytes.Buffer{})

	assert.Equal(t, ExitCodeSuccess, exitCode)
	var info buildInfo
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &info))
	assert.NotEmpty(t, info.Version)
	assert.NotEmpty(t, info.GoVersion)
}

func TestLoadBuildInfo_Fallbacks(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "versions.yaml")
	require.NoError(t, os.WriteFile(path, []byte("project:\n  version: 9.9.9\n"), FilePermissions))

	info := loadBuildInfo([]string{filepath.Join(tmpDir, "missing.yaml"), path})

	assert.Equal(t, "9.9.9", info.Version)
	assert.Equal(t, VersionUnknown, info.Commit)
	assert.NotEmpty(t, info.GoVersion)

	none := loadBuildInfo(nil)
	assert.Equal(t, VersionUnknown, none.Version)
}
