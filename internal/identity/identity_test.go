package identity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUsesKindPrefix(t *testing.T) {
	cases := map[Kind]string{
		KindStudent: "SU-",
		KindTeacher: "TE-",
		KindSubject: "SUB-",
		KindUser:    "US-",
	}
	for kind, prefix := range cases {
		id := New(kind)
		assert.True(t, strings.HasPrefix(id, prefix), "id %q should start with %q", id, prefix)
		assert.Greater(t, len(id), len(prefix)+suffixLen)
	}
}

func TestNewUnknownKindFallsBack(t *testing.T) {
	id := New(Kind("unknown"))
	assert.True(t, strings.HasPrefix(id, "ID-"))
}

func TestNewIsReasonablyUnique(t *testing.T) {
	// A same-millisecond burst leans entirely on the random suffix, so a
	// bulk-import sized batch must come out collision free.
	seen := make(map[string]struct{})
	for i := 0; i < 5000; i++ {
		id := New(KindStudent)
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %q", id)
		seen[id] = struct{}{}
	}
}

func TestSuffixShapeIsUniform(t *testing.T) {
	for _, suffix := range []string{randomSuffix(suffixLen), clockSuffix(suffixLen)} {
		require.Len(t, suffix, suffixLen)
		for _, c := range suffix {
			assert.Contains(t, alphabet, string(c))
		}
	}
}

func TestCanonicalPrefersDomainID(t *testing.T) {
	assert.Equal(t, "SU-12", Canonical("SU-12", "handle-1", "old"))
	assert.Equal(t, "handle-1", Canonical("", "handle-1", "old"))
	assert.Equal(t, "old", Canonical("", "", "old"))
	assert.Equal(t, "", Canonical("", "", ""))
}

func TestEnsureKeepsSuppliedID(t *testing.T) {
	assert.Equal(t, "SU-7", Ensure(KindStudent, "SU-7", "handle"))
}

func TestEnsureCopiesHandle(t *testing.T) {
	assert.Equal(t, "handle-9", Ensure(KindStudent, "", "handle-9"))
	assert.Equal(t, "handle-9", Ensure(KindStudent, "  ", "handle-9"))
}

func TestEnsureGeneratesWhenBothAbsent(t *testing.T) {
	id := Ensure(KindSubject, "", "")
	assert.True(t, strings.HasPrefix(id, "SUB-"))
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, "N/A", OrDefault("", NotAvailable))
	assert.Equal(t, "N/A", OrDefault("   ", NotAvailable))
	assert.Equal(t, "value", OrDefault("value", NotAvailable))
}
