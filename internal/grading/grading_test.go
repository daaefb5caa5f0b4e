package grading

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotal(t *testing.T) {
	assert.Equal(t, 85, Total(25, 60))
	assert.Equal(t, 0, Total(0, 0))
	assert.Equal(t, 60, Total(-5, 60))
	assert.Equal(t, 25, Total(25, -1))
}

func TestGradeBands(t *testing.T) {
	scale := DefaultScale()
	assert.Equal(t, "A", scale.Grade(100))
	assert.Equal(t, "A", scale.Grade(80))
	assert.Equal(t, "B", scale.Grade(79))
	assert.Equal(t, "B", scale.Grade(70))
	assert.Equal(t, "C", scale.Grade(60))
	assert.Equal(t, "D", scale.Grade(59))
	assert.Equal(t, "D", scale.Grade(0))
}

func TestGradeMonotonicInTotal(t *testing.T) {
	scale := DefaultScale()
	rank := map[string]int{"D": 0, "C": 1, "B": 2, "A": 3}
	prev := -1
	for total := 0; total <= 100; total++ {
		cur := rank[scale.Grade(total)]
		require.GreaterOrEqual(t, cur, prev, "grade regressed at total %d", total)
		prev = cur
	}
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0, Percentage(5, 0))
	assert.Equal(t, 50, Percentage(1, 2))
	assert.Equal(t, 67, Percentage(2, 3))
	assert.Equal(t, 100, Percentage(10, 10))
}

func TestStatusLabels(t *testing.T) {
	scale := DefaultScale()
	assert.Equal(t, "Excellent", scale.StatusLabel(95))
	assert.Equal(t, "Excellent", scale.StatusLabel(90))
	assert.Equal(t, "Good", scale.StatusLabel(75))
	assert.Equal(t, "Fair", scale.StatusLabel(60))
	assert.Equal(t, "Poor", scale.StatusLabel(59))
}

func TestApplyAttendanceEditLoweringTotalPullsPresentDown(t *testing.T) {
	newTotal := 3
	present, total := ApplyAttendanceEdit(10, 5, nil, &newTotal)
	assert.Equal(t, 3, present)
	assert.Equal(t, 3, total)
}

func TestApplyAttendanceEditRaisingPresentPullsTotalUp(t *testing.T) {
	newPresent := 25
	present, total := ApplyAttendanceEdit(10, 20, &newPresent, nil)
	assert.Equal(t, 25, present)
	assert.Equal(t, 25, total)
}

func TestApplyAttendanceEditBothFields(t *testing.T) {
	newPresent, newTotal := 8, 10
	present, total := ApplyAttendanceEdit(0, 0, &newPresent, &newTotal)
	assert.Equal(t, 8, present)
	assert.Equal(t, 10, total)
}

func TestApplyAttendanceEditNegativesClampToZero(t *testing.T) {
	newPresent, newTotal := -3, -1
	present, total := ApplyAttendanceEdit(4, 5, &newPresent, &newTotal)
	assert.Equal(t, 0, present)
	assert.Equal(t, 0, total)
}

func TestLoadScaleMissingFileUsesDefaults(t *testing.T) {
	scale, err := LoadScale(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, "A", scale.Grade(80))
}

func TestLoadScaleCustomThresholds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grading.toml")
	content := `
[[bands]]
min = 50
grade = "Pass"

[[bands]]
min = 0
grade = "Fail"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	scale, err := LoadScale(path)
	require.NoError(t, err)
	assert.Equal(t, "Pass", scale.Grade(51))
	assert.Equal(t, "Fail", scale.Grade(49))
	// attendance labels fall back to defaults
	assert.Equal(t, "Good", scale.StatusLabel(80))
}
