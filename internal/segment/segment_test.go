package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitDropsBlankRuns(t *testing.T) {
	t.Parallel()

	doc := "First thought here.\n\n\n   \nSecond thought.\n\nThird."
	got := Split(doc)

	require.Len(t, got, 3)
	assert.Equal(t, "First thought here.", got[0].Text)
	assert.Equal(t, "Second thought.", got[1].Text)
	assert.Equal(t, "Third.", got[2].Text)
	for i, p := range got {
		assert.Equal(t, i, p.Index)
	}
}

func TestSplitOffsetsPointIntoDocument(t *testing.T) {
	t.Parallel()

	doc := "alpha\n\nbeta gamma\n\n"
	got := Split(doc)

	require.Len(t, got, 2)
	assert.Equal(t, "alpha", doc[got[0].StartOffset:got[0].EndOffset])
	assert.Equal(t, "beta gamma", doc[got[1].StartOffset:got[1].EndOffset])
}

func TestSplitKeepsSingleNewlinesInsideParagraph(t *testing.T) {
	t.Parallel()

	doc := "line one\nline two\n\nnext block"
	got := Split(doc)

	require.Len(t, got, 2)
	assert.Equal(t, "line one\nline two", got[0].Text)
	assert.Equal(t, "next block", got[1].Text)
}

func TestSplitEmptyAndBlankDocuments(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Split(""))
	assert.Empty(t, Split("\n\n\n"))
	assert.Empty(t, Split("   \n \t \n"))
}

func TestSplitJoinIdempotence(t *testing.T) {
	t.Parallel()

	docs := []string{
		"I feel stuck today.\n\nMaybe I should try a walk.",
		"  padded start\n\n\nmiddle\n\nend with trailing\n\n",
		"single block only",
		"a\nb\nc\n\nd",
	}
	for _, doc := range docs {
		first := Split(doc)
		second := Split(Join(first))
		require.Len(t, second, len(first), "doc %q", doc)
		for i := range first {
			assert.Equal(t, first[i].Text, second[i].Text)
			assert.Equal(t, first[i].Index, second[i].Index)
		}
	}
}

func TestFingerprintIgnoresCaseAndSpacing(t *testing.T) {
	t.Parallel()

	a := Fingerprint("The  quick  brown fox")
	b := Fingerprint("the quick brown\tfox")
	c := Fingerprint("the quick brown dog")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 16)
}
