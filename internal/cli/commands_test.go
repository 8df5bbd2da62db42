package cli

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/voicesync/internal/render"
	"github.com/roach88/voicesync/internal/testutil"
)

func TestRender_PrintsArtifact(t *testing.T) {
	root := newProject(t, sampleDB)

	out, _, err := execute(t, NewRenderCommand(textOpts(root)), "registry")
	require.NoError(t, err)

	want, err := render.RenderRegistry(testutil.SampleDatabase(t), render.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, string(want), out)
	assert.False(t, fileExists(projectPath(root, registryRel)))
}

func TestRender_JSON(t *testing.T) {
	root := newProject(t, sampleDB)

	out, _, err := execute(t, NewRenderCommand(jsonOpts(root)), "mapping")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	data := resp.Data.(map[string]any)
	assert.Equal(t, "mapping", data["artifact"])
	assert.Contains(t, data["content"], `"climp:climp_idle_1"`)
}

func TestRender_UnknownArtifact(t *testing.T) {
	root := newProject(t, sampleDB)

	_, _, err := execute(t, NewRenderCommand(textOpts(root)), "sounds")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRender_InvalidDatabase(t *testing.T) {
	root := newProject(t, testutil.InvalidJSON)

	_, _, err := execute(t, NewRenderCommand(textOpts(root)), "lookup")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestList_Categories(t *testing.T) {
	root := newProject(t, sampleDB)

	out, _, err := execute(t, NewListCommand(textOpts(root)))
	require.NoError(t, err)
	assert.Contains(t, out, "KEY")
	assert.Contains(t, out, "idlelines")
	assert.Contains(t, out, "climp_task_failed_target_removed_")
	assert.Contains(t, out, "4 lines total")
}

func TestList_CategoriesJSON(t *testing.T) {
	root := newProject(t, sampleDB)

	out, _, err := execute(t, NewListCommand(jsonOpts(root)))
	require.NoError(t, err)

	var resp struct {
		Data []categorySummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 6)
	assert.Equal(t, "idlelines", resp.Data[0].Key)
	assert.Equal(t, 2, resp.Data[0].Lines)
	assert.Equal(t, 0, resp.Data[2].Lines)
}

func TestList_OneCategory(t *testing.T) {
	root := newProject(t, sampleDB)

	out, _, err := execute(t, NewListCommand(textOpts(root)), "idlelines")
	require.NoError(t, err)
	assert.Contains(t, out, "climp_idle_1")
	assert.Contains(t, out, "Hello there.")

	out, _, err = execute(t, NewListCommand(textOpts(root)), "taskstartlines")
	require.NoError(t, err)
	assert.Contains(t, out, "No task start lines")
}

func TestList_UnknownCategory(t *testing.T) {
	root := newProject(t, sampleDB)

	_, _, err := execute(t, NewListCommand(textOpts(root)), "idle")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestSample_SeededIsReproducible(t *testing.T) {
	root := newProject(t, sampleDB)

	first, _, err := execute(t, NewSampleCommand(textOpts(root)), "idlelines", "--seed", "42")
	require.NoError(t, err)
	second, _, err := execute(t, NewSampleCommand(textOpts(root)), "idlelines", "--seed", "42")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSample_Exclude(t *testing.T) {
	root := newProject(t, sampleDB)

	for seed := range 10 {
		out, _, err := execute(t, NewSampleCommand(jsonOpts(root)), "idlelines", "--exclude", "climp_idle_1", "--seed", strconv.Itoa(seed))
		require.NoError(t, err)

		var resp struct {
			Data sampleOutput `json:"data"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		assert.Equal(t, "climp_idle_2", resp.Data.Line.SoundID)
		assert.False(t, resp.Data.Fallback)
	}
}

func TestSample_EmptyCategoryFallback(t *testing.T) {
	root := newProject(t, sampleDB)

	out, _, err := execute(t, NewSampleCommand(textOpts(root)), "taskstartlines")
	require.NoError(t, err)
	assert.Contains(t, out, "using fallback")
	assert.Contains(t, out, "climp_idle_1\t...")
}

func TestSample_UnknownCategory(t *testing.T) {
	root := newProject(t, sampleDB)

	_, _, err := execute(t, NewSampleCommand(textOpts(root)), "nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCheckAssets(t *testing.T) {
	root := newProject(t, sampleDB)
	testutil.WriteFile(t, root, soundsRel+"/climp_idle_1.ogg", "x")
	testutil.WriteFile(t, root, soundsRel+"/climp_gone_1.ogg", "x")

	out, _, err := execute(t, NewCheckAssetsCommand(textOpts(root)))
	require.NoError(t, err)
	assert.Contains(t, out, "[W301]")
	assert.Contains(t, out, "[W302] sound file climp_gone_1.ogg has no voiceline")
	assert.Contains(t, out, "1/4 sound files present")
}

func TestHistory_JournalDisabled(t *testing.T) {
	root := newProject(t, sampleDB)

	_, _, err := execute(t, NewHistoryCommand(textOpts(root)))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "journal disabled")
}

func TestHistory_EmptyJournal(t *testing.T) {
	root := newProject(t, sampleDB)
	testutil.WriteFile(t, root, "voicesync.yaml", "paths:\n  journal: journal.db\n")

	out, _, err := execute(t, NewHistoryCommand(textOpts(root)))
	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded")
}
