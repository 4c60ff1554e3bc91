package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/officegraph/internal/app"
	"github.com/vk/officegraph/internal/change"
	"github.com/vk/officegraph/internal/hcl"
	"github.com/vk/officegraph/internal/model"
	"github.com/vk/officegraph/internal/office"
	"github.com/vk/officegraph/internal/persist"
	"github.com/vk/officegraph/internal/testutil"
)

// sampleFile returns the sample office in HCL.
func sampleFile(t *testing.T) string {
	t.Helper()
	data, err := hcl.NewCodec().Encode(context.Background(), testutil.NewSample(t).Office)
	require.NoError(t, err)
	return string(data)
}

func newApp(t *testing.T, cfg app.Config) (*app.App, *testutil.SafeBuffer) {
	t.Helper()
	cfg.LogLevel = "debug"
	config, err := app.NewConfig(cfg)
	require.NoError(t, err)
	logs := &testutil.SafeBuffer{}
	t.Cleanup(func() {
		if os.Getenv("OFFICEGRAPH_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})
	return app.NewApp(logs, config), logs
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg, err := app.NewConfig(app.Config{Paths: []string{"office.office.hcl"}})
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, app.OutputText, cfg.Output)

	_, err = app.NewConfig(app.Config{})
	assert.EqualError(t, err, "Paths: at least one value is required")

	_, err = app.NewConfig(app.Config{Paths: []string{"x"}, LogLevel: "loud"})
	assert.EqualError(t, err, `LogLevel: "loud" is not one of debug info warn error`)

	_, err = app.NewConfig(app.Config{Paths: []string{"x"}, Output: "json"})
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("json at info", func(t *testing.T) {
		var out bytes.Buffer
		cfg, err := app.NewConfig(app.Config{Paths: []string{"."}, LogLevel: "info", LogFormat: app.LogJSON})
		require.NoError(t, err)

		logger := app.NewLogger(cfg, &out)
		logger.Debug("App: Hidden.")
		logger.Info("App: Shown.", "files", 2)

		var record map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &record))
		assert.Equal(t, "App: Shown.", record["msg"])
		assert.Equal(t, 2.0, record["files"])
	})

	t.Run("unvalidated config falls back to warn text", func(t *testing.T) {
		var out bytes.Buffer
		logger := app.NewLogger(&app.Config{LogLevel: "loud"}, &out)
		logger.Info("App: Hidden.")
		logger.Warn("App: Shown.")

		assert.NotContains(t, out.String(), "Hidden")
		assert.Contains(t, out.String(), `level=WARN msg="App: Shown."`)
	})
}

func TestCompile(t *testing.T) {
	t.Parallel()
	dir := testutil.WriteFiles(t, map[string]string{"sample.office.hcl": sampleFile(t)})
	a, logs := newApp(t, app.Config{Paths: []string{dir}})

	results, err := a.Compile(context.Background())
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.True(t, results[0].OK(), "%v", results[0].Problems())
	assert.Len(t, results[0].Architect.Find("add_section"), 2)
	assert.Equal(t, 14.0, promtest.ToFloat64(a.Metrics().ArchitectCalls.WithLabelValues("link")))
	assert.Equal(t, 15.0, promtest.ToFloat64(a.Metrics().LinksResolved))
	assert.Contains(t, logs.String(), "App: Office compiled.")
}

func TestCompile_ReportsProblems(t *testing.T) {
	t.Parallel()
	dir := testutil.WriteFiles(t, map[string]string{"broken.office.hcl": `
team "workers" {}

administration "audit" {
  source_class = "Audit"
  link "administration_to_team" {
    to = "ghost"
  }
}

managed_object "orphan" {
  scope = "PROCESS"
}
`})
	a, _ := newApp(t, app.Config{Paths: []string{dir}})

	results, err := a.Compile(context.Background())
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.False(t, results[0].OK())
	assert.Equal(t, []string{
		"dropped connection administration audit: administration_to_team -> ghost (unknown target)",
		"managed object orphan: no managed object source",
	}, results[0].Problems())
}

func TestCompile_DecodeErrorStops(t *testing.T) {
	t.Parallel()
	dir := testutil.WriteFiles(t, map[string]string{"bad.office.hcl": `team "a" {`})
	a, _ := newApp(t, app.Config{Paths: []string{dir}})

	_, err := a.Compile(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse HCL file")
}

func TestCompile_NoFiles(t *testing.T) {
	t.Parallel()
	a, _ := newApp(t, app.Config{Paths: []string{t.TempDir()}})

	_, err := a.Compile(context.Background())

	assert.EqualError(t, err, "no .office.hcl files found")
}

func TestFormat_WritesChangedFiles(t *testing.T) {
	t.Parallel()
	dir := testutil.WriteFiles(t, map[string]string{
		"messy.office.hcl": "team   \"workers\"   {\n}\n",
		"clean.office.hcl": "team \"workers\" {\n}\n",
	})
	a, _ := newApp(t, app.Config{Paths: []string{dir}, Write: true})

	formatted, err := a.Format(context.Background())
	require.NoError(t, err)

	require.Len(t, formatted, 2)
	assert.Equal(t, filepath.Join(dir, "clean.office.hcl"), formatted[0].Path)
	assert.False(t, formatted[0].Changed)
	assert.True(t, formatted[1].Changed)
	data, err := os.ReadFile(filepath.Join(dir, "messy.office.hcl"))
	require.NoError(t, err)
	assert.Equal(t, "team \"workers\" {\n}\n", string(data))
}

// loadOffice decodes and resolves an office file.
func loadOffice(t *testing.T, path string) *model.Office {
	t.Helper()
	o := model.NewOffice()
	_, err := persist.NewRepository(hcl.NewCodec(), nil).Retrieve(context.Background(), o, persist.FileItem{Path: path})
	require.NoError(t, err)
	return o
}

func TestEdit_AppliesAndStores(t *testing.T) {
	t.Parallel()
	dir := testutil.WriteFiles(t, map[string]string{"sample.office.hcl": sampleFile(t)})
	path := filepath.Join(dir, "sample.office.hcl")
	a, logs := newApp(t, app.Config{Paths: []string{path}, Write: true})

	result, err := a.Edit(context.Background(),
		app.Rename(model.KindTeam, "workers", "crew"),
		app.Rename(model.KindTeam, "ghost", "spirit"),
		app.Remove(model.KindAdministration, "audit"),
	)
	require.NoError(t, err)

	require.Len(t, result.Applied, 2)
	assert.Equal(t, "Rename team workers to crew", result.Applied[0].Change.Description())
	assert.Equal(t, "Remove administration audit", result.Applied[1].Change.Description())
	assert.Equal(t, []string{"team ghost is not in the office"}, result.Skipped)
	assert.True(t, result.Written)
	assert.Equal(t, 2.0, promtest.ToFloat64(a.Metrics().ChangesApplied))
	assert.Contains(t, logs.String(), "App: Office edited.")

	o := loadOffice(t, path)
	assert.Equal(t, []string{"admins", "crew"}, model.Names(o.Teams))
	assert.Equal(t, []string{"txn"}, model.Names(o.Administrations))
	n, ok := o.Find(model.KindFunction, "orders.validate.check")
	require.True(t, ok, "check keeps its team link")
	crew, _ := o.Find(model.KindTeam, "crew")
	assert.Same(t, crew, n.Endpoint().First(model.EdgeFunctionToTeam).Target())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(result.Content), string(data))
}

func TestEdit_DryRunLeavesTheFile(t *testing.T) {
	t.Parallel()
	original := sampleFile(t)
	dir := testutil.WriteFiles(t, map[string]string{"sample.office.hcl": original})
	path := filepath.Join(dir, "sample.office.hcl")
	a, _ := newApp(t, app.Config{Paths: []string{path}})

	result, err := a.Edit(context.Background(), app.Remove(model.KindSection, "billing"))
	require.NoError(t, err)

	assert.False(t, result.Written)
	assert.Len(t, result.Applied, 1)
	assert.NotContains(t, string(result.Content), `section "billing"`)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}

func TestEdit_FailureUndoesEarlierEdits(t *testing.T) {
	t.Parallel()
	original := sampleFile(t)
	dir := testutil.WriteFiles(t, map[string]string{"sample.office.hcl": original})
	path := filepath.Join(dir, "sample.office.hcl")
	a, _ := newApp(t, app.Config{Paths: []string{path}, Write: true})
	var team *model.Team
	broken := func(ops *office.Operations) change.Change {
		n, _ := ops.Office().Find(model.KindTeam, "crew")
		team = n.(*model.Team)
		return change.Fail(team, "Break", errors.New("boom"))
	}

	_, err := a.Edit(context.Background(), app.Rename(model.KindTeam, "workers", "crew"), broken)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, "workers", team.Name, "the rename is undone")
	assert.Equal(t, 1.0, promtest.ToFloat64(a.Metrics().ChangesReverted))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}

func TestEdit_NeedsOneFile(t *testing.T) {
	t.Parallel()
	a, _ := newApp(t, app.Config{Paths: []string{t.TempDir()}})

	_, err := a.Edit(context.Background(), app.Remove(model.KindTeam, "workers"))

	assert.EqualError(t, err, "no .office.hcl files found")
}

func TestRemove_UnsupportedKindIsSkipped(t *testing.T) {
	t.Parallel()
	s := testutil.NewSample(t)
	ops := office.New(s.Office)

	c := app.Remove(model.KindFunction, "orders.validate.check")(ops)

	assert.True(t, change.IsNoChange(c))
	assert.Equal(t, "Can not remove a function on its own", c.Description())
}
