package voicedb

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *RawDatabase {
	t.Helper()
	raw, err := Parse("voicelines.json", []byte(src))
	require.NoError(t, err)
	return raw
}

func codes(vs []Violation) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Code
	}
	return out
}

// =============================================================================
// Valid databases
// =============================================================================

func TestValidateValid(t *testing.T) {
	report := Validate(mustParse(t, sampleJSON))
	assert.True(t, report.Valid())
	assert.Empty(t, report.Violations)
	assert.Empty(t, report.Warnings)
	assert.NoError(t, report.Err())
}

func TestValidateEmptyDatabase(t *testing.T) {
	report := Validate(mustParse(t, `{}`))
	assert.True(t, report.Valid())
}

func TestValidateNil(t *testing.T) {
	report := Validate(nil)
	assert.True(t, report.Valid())
}

// =============================================================================
// Naming rules
// =============================================================================

func TestValidatePrefixMismatch(t *testing.T) {
	raw := mustParse(t, `{
  "hitlines": [{"id": "climp_idle_9", "textline": "Ow", "voiceline": "Ow"}]
}`)

	report := Validate(raw)
	require.Len(t, report.Violations, 1)
	v := report.Violations[0]
	assert.Equal(t, ErrIDPrefix, v.Code)
	assert.Equal(t, "hitlines", v.Category)
	assert.Equal(t, 0, v.Index)
	assert.Equal(t, "climp_idle_9", v.ID)
	assert.Contains(t, v.Message, "climp_hit_")
}

func TestValidatePrefixRequiresNumericSuffix(t *testing.T) {
	raw := mustParse(t, `{
  "hitlines": [{"id": "climp_hit_extra_1", "textline": "Ow", "voiceline": "Ow"}]
}`)

	report := Validate(raw)
	assert.Equal(t, []string{ErrIDPrefix}, codes(report.Violations))
}

func TestValidateGeneralPattern(t *testing.T) {
	raw := mustParse(t, `{
  "hitlines": [
    {"id": "Climp-Hit-1", "textline": "Ow", "voiceline": "Ow"},
    {"id": "climp_hit", "textline": "Ow", "voiceline": "Ow"}
  ]
}`)

	report := Validate(raw)
	assert.Equal(t, []string{ErrIDPattern, ErrIDPattern}, codes(report.Violations))
}

// =============================================================================
// Uniqueness
// =============================================================================

func TestValidateDuplicateAcrossCategories(t *testing.T) {
	raw := mustParse(t, `{
  "hitlines": [{"id": "climp_idle_1", "textline": "Ow", "voiceline": "Ow"}],
  "idlelines": [{"id": "climp_idle_1", "textline": "Hm", "voiceline": "Hm"}]
}`)

	report := Validate(raw)
	require.False(t, report.Valid())

	// idlelines comes first in canonical order, so its entry wins even
	// though hitlines appears first in the document.
	var dups []Violation
	for _, v := range report.Violations {
		if v.Code == ErrDuplicateID {
			dups = append(dups, v)
		}
	}
	require.Len(t, dups, 1)
	assert.Equal(t, "hitlines", dups[0].Category)
	assert.Equal(t, 0, dups[0].Index)
	assert.Contains(t, dups[0].Message, "idlelines[0]")
}

func TestValidateDuplicateWithinCategory(t *testing.T) {
	raw := mustParse(t, `{
  "idlelines": [
    {"id": "climp_idle_1", "textline": "a", "voiceline": "a"},
    {"id": "climp_idle_2", "textline": "b", "voiceline": "b"},
    {"id": "climp_idle_1", "textline": "c", "voiceline": "c"},
    {"id": "climp_idle_1", "textline": "d", "voiceline": "d"}
  ]
}`)

	report := Validate(raw)
	require.Len(t, report.Violations, 2)
	assert.Equal(t, 2, report.Violations[0].Index)
	assert.Equal(t, 3, report.Violations[1].Index)
}

// =============================================================================
// Structure
// =============================================================================

func TestValidateCollectsEveryProblem(t *testing.T) {
	raw := mustParse(t, `{
  "idlelines": [
    {"textline": "no id", "voiceline": "x"},
    {"id": "climp_idle_2", "textline": "   ", "voiceline": 3},
    "just a string"
  ],
  "hitlines": {"id": "climp_hit_1"}
}`)

	report := Validate(raw)
	assert.Equal(t, []string{
		ErrFieldMissing,
		ErrFieldEmpty,
		ErrFieldNotString,
		ErrEntryNotRecord,
		ErrCategoryNotList,
	}, codes(report.Violations))

	assert.Equal(t, FieldID, report.Violations[0].Field)
	assert.Equal(t, FieldTextline, report.Violations[1].Field)
	assert.Equal(t, FieldVoiceline, report.Violations[2].Field)
	assert.Equal(t, -1, report.Violations[4].Index)
}

func TestValidateBadIDSkipsNamingChecks(t *testing.T) {
	raw := mustParse(t, `{
  "idlelines": [{"id": "", "textline": "a", "voiceline": "a"}]
}`)

	report := Validate(raw)
	assert.Equal(t, []string{ErrFieldEmpty}, codes(report.Violations))
}

// =============================================================================
// Warnings
// =============================================================================

func TestValidateUnknownCategoryWarns(t *testing.T) {
	raw := mustParse(t, `{
  "hitline": [{"id": "climp_hit_1", "textline": "a", "voiceline": "a"}],
  "zzz": []
}`)

	report := Validate(raw)
	assert.True(t, report.Valid(), "unknown keys never block")
	require.Len(t, report.Warnings, 2)
	assert.Equal(t, WarnUnknownCategory, report.Warnings[0].Code)
	assert.Contains(t, report.Warnings[0].Message, `did you mean "hitlines"`)
	assert.NotContains(t, report.Warnings[1].Message, "did you mean")
}

// =============================================================================
// Build
// =============================================================================

func TestBuildInvalid(t *testing.T) {
	raw := mustParse(t, `{"hitlines": [{"id": "climp_idle_9", "textline": "a", "voiceline": "a"}]}`)

	db, report := Build(raw)
	assert.Nil(t, db)
	require.Error(t, report.Err())
	assert.True(t, errors.Is(report.Err(), ErrInvalidDatabase))
}

func TestBuildKeepsOrderAndDropsUnknown(t *testing.T) {
	raw := mustParse(t, `{
  "extra": [{"id": "x_1", "textline": "x", "voiceline": "x"}],
  "hitlines": [{"id": "climp_hit_2", "textline": "b", "voiceline": "b"}],
  "idlelines": [
    {"id": "climp_idle_7", "textline": "y", "voiceline": "y"},
    {"id": "climp_idle_3", "textline": "z", "voiceline": "z"}
  ]
}`)

	db, report := Build(raw)
	require.NotNil(t, db)
	assert.Len(t, report.Warnings, 1)

	var ids []string
	for _, e := range db.Entries() {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"climp_idle_7", "climp_idle_3", "climp_hit_2"}, ids)
	assert.Equal(t, 3, db.Len())
	assert.Empty(t, db.Lines("taskstartlines"))
}

func TestDigestIgnoresFieldOrder(t *testing.T) {
	a := mustParse(t, `{"hitlines": [{"id": "climp_hit_1", "textline": "a", "voiceline": "b"}]}`)
	b := mustParse(t, `{"hitlines": [{"voiceline": "b", "textline": "a", "id": "climp_hit_1"}]}`)

	dbA, _ := Build(a)
	dbB, _ := Build(b)
	require.NotNil(t, dbA)
	require.NotNil(t, dbB)
	assert.Equal(t, dbA.Digest(), dbB.Digest())

	c := mustParse(t, `{"hitlines": [{"id": "climp_hit_1", "textline": "a", "voiceline": "c"}]}`)
	dbC, _ := Build(c)
	assert.NotEqual(t, dbA.Digest(), dbC.Digest())
}

func TestDatabaseFind(t *testing.T) {
	db, _ := Build(mustParse(t, sampleJSON))
	require.NotNil(t, db)

	e, c, ok := db.Find("climp_hit_1")
	require.True(t, ok)
	assert.Equal(t, "Hey!", e.Textline)
	assert.Equal(t, "hitlines", c.Key)

	_, _, ok = db.Find("climp_hit_99")
	assert.False(t, ok)
}
