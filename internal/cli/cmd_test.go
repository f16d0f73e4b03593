package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/glidepath/internal/domain"
	"github.com/alexanderramin/glidepath/internal/repository"
	"github.com/alexanderramin/glidepath/internal/service"
	"github.com/alexanderramin/glidepath/internal/testutil"
)

func testApp(t *testing.T) *App {
	t.Helper()
	clock := func() time.Time { return testutil.FixedNow }
	ctrl := service.NewPlanController(repository.NewMemorySnapshotStore(), "tester", service.WithClock(clock))
	return &App{
		Plan:          ctrl,
		Backups:       service.NewBackupService(ctrl, filepath.Join(t.TempDir(), "backups")),
		IsInteractive: func() bool { return false },
	}
}

// seedProgram creates the 90 -> 80 kg, 10 week program through the CLI.
func seedProgram(t *testing.T, app *App) {
	t.Helper()
	_, err := executeCmd(t, app, "start", "--start", "90", "--target", "80", "--weeks", "10")
	require.NoError(t, err)
}

func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(new(bytes.Buffer))
	root.SetArgs(args)
	err := root.Execute()
	return stripANSI(buf.String()), err
}

func requireCode(t *testing.T, err error, code domain.ValidationErrorCode) {
	t.Helper()
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, code, verr.Code)
}

func TestRootCmd_NoProgram(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, out, "No active program")
}

func TestStartCmd_WithFlags(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "start", "--start", "90", "--target", "80", "--weeks", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Created a 10 week loss program: 90.0 kg → 80.0 kg")
	assert.Contains(t, out, "GLIDE PATH")
	assert.Equal(t, domain.StateActive, app.Plan.State())
	assert.Len(t, app.Plan.Weeks(), 10)
}

func TestStartCmd_AcceptsCommaAndUnit(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "start", "--start", "70,5 kg", "--target", "74", "--weeks", "8")
	require.NoError(t, err)
	p := app.Plan.Program()
	require.NotNil(t, p)
	assert.Equal(t, 70.5, p.StartWeight)
	assert.Equal(t, domain.DirectionGain, p.Direction())
}

func TestStartCmd_MissingFlagsWithoutTerminal(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "start")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--start, --target and --weeks are required")
}

func TestStartCmd_InvalidProgram(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code domain.ValidationErrorCode
	}{
		{"identical", []string{"--start", "90", "--target", "90", "--weeks", "10"}, domain.ErrCodeIdenticalGoal},
		{"too fast", []string{"--start", "90", "--target", "70", "--weeks", "4"}, domain.ErrCodeUnrealisticProgram},
		{"weeks not offered", []string{"--start", "90", "--target", "88", "--weeks", "3"}, domain.ErrCodeInvalidDuration},
		{"weight out of range", []string{"--start", "20", "--target", "30", "--weeks", "10"}, domain.ErrCodeInvalidWeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testApp(t)
			_, err := executeCmd(t, app, append([]string{"start"}, tt.args...)...)
			requireCode(t, err, tt.code)
			assert.Equal(t, domain.StateNoProgram, app.Plan.State())
		})
	}
}

func TestStartCmd_ReplaceNeedsConfirmation(t *testing.T) {
	app := testApp(t)
	seedProgram(t, app)

	_, err := executeCmd(t, app, "start", "--start", "60", "--target", "64", "--weeks", "4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")
	assert.Equal(t, 90.0, app.Plan.Program().StartWeight)

	_, err = executeCmd(t, app, "start", "--start", "60", "--target", "64", "--weeks", "4", "--yes")
	require.NoError(t, err)
	assert.Equal(t, 60.0, app.Plan.Program().StartWeight)
}

func TestPlanCmd(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "plan")
	require.Error(t, err)

	seedProgram(t, app)
	out, err := executeCmd(t, app, "plan")
	require.NoError(t, err)
	assert.Contains(t, out, "LOSS 90.0 kg → 80.0 kg in 10 weeks")
	assert.Contains(t, out, "89.0 kg")
	assert.Contains(t, out, "80.0 kg")
	assert.Contains(t, out, "› 1")
}

func TestLogCmd_RecordsWeek(t *testing.T) {
	app := testApp(t)
	seedProgram(t, app)

	out, err := executeCmd(t, app, "log", "1", "89")
	require.NoError(t, err)
	assert.Contains(t, out, "✔ right on target")
	assert.Contains(t, out, "Week 1: 89.0 kg (target 89.0 kg)")
	assert.Contains(t, out, "ON TRACK")

	w, err := app.Plan.Week(1)
	require.NoError(t, err)
	assert.Equal(t, domain.WeekOnTrack, w.Status)
}

func TestLogCmd_WarnsButCommits(t *testing.T) {
	app := testApp(t)
	seedProgram(t, app)

	out, err := executeCmd(t, app, "log", "1", "87")
	require.NoError(t, err)
	assert.Contains(t, out, "! 3.0 kg weekly change is a bit fast")
	assert.Contains(t, out, "AHEAD")
}

func TestLogCmd_EditGate(t *testing.T) {
	app := testApp(t)
	seedProgram(t, app)
	_, err := executeCmd(t, app, "log", "1", "89")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "log", "1", "88")
	require.ErrorIs(t, err, service.ErrWeekAlreadyRecorded)
	assert.Contains(t, err.Error(), "--edit")

	out, err := executeCmd(t, app, "log", "1", "88", "--edit")
	require.NoError(t, err)
	assert.Contains(t, out, "Week 1: 88.0 kg")
	assert.False(t, app.Plan.Editing(1))

	w, err := app.Plan.Week(1)
	require.NoError(t, err)
	assert.Equal(t, domain.WeekAhead, w.Status)
}

func TestLogCmd_Rejects(t *testing.T) {
	app := testApp(t)
	seedProgram(t, app)

	_, err := executeCmd(t, app, "log", "11", "80")
	requireCode(t, err, domain.ErrCodeUnknownWeek)

	_, err = executeCmd(t, app, "log", "2", "abc")
	requireCode(t, err, domain.ErrCodeInvalidWeeklyEntry)

	_, err = executeCmd(t, app, "log", "2", "301")
	requireCode(t, err, domain.ErrCodeInvalidWeeklyEntry)

	_, err = executeCmd(t, app, "log", "two", "80")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid week "two"`)

	_, err = executeCmd(t, app, "log", "2")
	require.Error(t, err)

	assert.Zero(t, app.Plan.Summary().CompletedWeeks)
}

func TestStatsCmd(t *testing.T) {
	app := testApp(t)
	seedProgram(t, app)
	for _, args := range [][]string{{"log", "1", "89"}, {"log", "2", "88.2"}} {
		_, err := executeCmd(t, app, args...)
		require.NoError(t, err)
	}

	out, err := executeCmd(t, app, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "PROGRESS")
	assert.Contains(t, out, "2 of 10 weeks")
	assert.Contains(t, out, "100/100 excellent")

	out, err = executeCmd(t, app, "stats", "--json")
	require.NoError(t, err)
	var got statsJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 2, got.Summary.CompletedWeeks)
	assert.Equal(t, 3, got.Summary.CurrentWeek)
	assert.Len(t, got.Achievements, 6)
}

func TestTrendCmd(t *testing.T) {
	app := testApp(t)
	seedProgram(t, app)
	_, err := executeCmd(t, app, "log", "1", "89")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "trend")
	require.NoError(t, err)
	assert.Contains(t, out, "TREND")
	assert.Contains(t, out, "Record more weeks")
}

func TestResetCmd(t *testing.T) {
	app := testApp(t)
	seedProgram(t, app)

	_, err := executeCmd(t, app, "reset")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pass --yes")
	assert.Equal(t, domain.StateActive, app.Plan.State())

	out, err := executeCmd(t, app, "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Program deleted")
	assert.Equal(t, domain.StateNoProgram, app.Plan.State())
}

func TestExportImportCmd(t *testing.T) {
	app := testApp(t)
	seedProgram(t, app)
	_, err := executeCmd(t, app, "log", "1", "88.4")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "export", "-")
	require.NoError(t, err)
	var doc service.BackupDocument
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, service.BackupVersion, doc.Version)

	path := filepath.Join(t.TempDir(), "export", "program.json")
	out, err = executeCmd(t, app, "export", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported to")

	_, err = executeCmd(t, app, "reset", "--yes")
	require.NoError(t, err)

	out, err = executeCmd(t, app, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported a 10 week program (90.0 kg → 80.0 kg)")
	w, err := app.Plan.Week(1)
	require.NoError(t, err)
	assert.Equal(t, domain.WeekAhead, w.Status)

	_, err = executeCmd(t, app, "import", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestBackupCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "backup", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No backups found.")

	_, err = executeCmd(t, app, "backup", "create")
	require.Error(t, err)

	seedProgram(t, app)
	out, err = executeCmd(t, app, "backup", "create")
	require.NoError(t, err)
	assert.Contains(t, out, "Created backup backup_20250303T080000Z.json")

	out, err = executeCmd(t, app, "backup", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "backup_20250303T080000Z.json")

	_, err = executeCmd(t, app, "start", "--start", "60", "--target", "64", "--weeks", "4", "--yes")
	require.NoError(t, err)

	out, err = executeCmd(t, app, "backup", "restore", "backup_20250303T080000Z.json")
	require.NoError(t, err)
	assert.Contains(t, out, "Restored a 10 week program")
	assert.Equal(t, 90.0, app.Plan.Program().StartWeight)

	_, err = executeCmd(t, app, "backup", "restore", "../etc/passwd")
	require.Error(t, err)
}

func TestEntryCmd_NeedsTerminal(t *testing.T) {
	app := testApp(t)
	seedProgram(t, app)

	_, err := executeCmd(t, app, "entry")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs a terminal")
}
