package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecommendations_TwoBlocks(t *testing.T) {
	raw := "- Task Name: Pay bills\n- Reason: Due today\n\n- Task Name: Read\n- Reason: Relaxing"

	recs, skipped := ParseRecommendations(raw)

	require.Len(t, recs, 2)
	assert.Equal(t, Recommendation{Name: "Pay bills", Reason: "Due today"}, recs[0])
	assert.Equal(t, Recommendation{Name: "Read", Reason: "Relaxing"}, recs[1])
	assert.Zero(t, skipped)
}

func TestParseRecommendations_Empty(t *testing.T) {
	recs, skipped := ParseRecommendations("")
	assert.Empty(t, recs)
	assert.Zero(t, skipped)
}

func TestParseRecommendations_MultilineReason(t *testing.T) {
	raw := "- Task Name: Write report\n- Reason: The deadline is close\nand you have two free hours now\n\n- Task Name: Stretch\n- Reason: Short break"

	recs, skipped := ParseRecommendations(raw)

	require.Len(t, recs, 2)
	assert.Equal(t, "Write report", recs[0].Name)
	assert.Equal(t, "The deadline is close\nand you have two free hours now", recs[0].Reason)
	assert.Equal(t, "Stretch", recs[1].Name)
	assert.Zero(t, skipped)
}

func TestParseRecommendations_ReasonEndsAtNextBlock(t *testing.T) {
	// No blank line between blocks.
	raw := "- Task Name: A\n- Reason: first\n- Task Name: B\n- Reason: second"

	recs, skipped := ParseRecommendations(raw)

	require.Len(t, recs, 2)
	assert.Equal(t, "first", recs[0].Reason)
	assert.Equal(t, "second", recs[1].Reason)
	assert.Zero(t, skipped)
}

func TestParseRecommendations_SkipsMalformedSpans(t *testing.T) {
	raw := "Here are my recommendations:\n\n- Task Name: Pay bills\n- Reason: Due today\n\nSome chatter in between.\n\n- Task Name: Orphan without reason\n\n- Task Name: Read\n- Reason: Relaxing"

	recs, skipped := ParseRecommendations(raw)

	require.Len(t, recs, 2)
	assert.Equal(t, "Pay bills", recs[0].Name)
	assert.Equal(t, "Read", recs[1].Name)
	// Preamble, chatter and the orphan block all count as skipped spans.
	assert.Equal(t, 3, skipped)
}

func TestParseRecommendations_OrphanedNameWithTrailingTextCountsOnce(t *testing.T) {
	raw := "- Task Name: Orphan\nsome trailing chatter\nmore chatter\n\n- Task Name: Read\n- Reason: Relaxing"

	recs, skipped := ParseRecommendations(raw)

	require.Len(t, recs, 1)
	assert.Equal(t, "Read", recs[0].Name)
	assert.Equal(t, 1, skipped)
}

func TestParseRecommendations_NoMatchIsNotAnError(t *testing.T) {
	recs, skipped := ParseRecommendations("Sorry, I cannot recommend anything right now.")
	assert.Empty(t, recs)
	assert.Equal(t, 1, skipped)
}

func TestParseRecommendations_NoUpperLimit(t *testing.T) {
	raw := "- Task Name: A\n- Reason: a\n\n- Task Name: B\n- Reason: b\n\n- Task Name: C\n- Reason: c"

	recs, _ := ParseRecommendations(raw)
	assert.Len(t, recs, 3)
}

func TestParseRecommendations_PreservesOrder(t *testing.T) {
	raw := "- Task Name: Zebra\n- Reason: z\n\n- Task Name: Apple\n- Reason: a"

	recs, _ := ParseRecommendations(raw)
	require.Len(t, recs, 2)
	assert.Equal(t, "Zebra", recs[0].Name)
	assert.Equal(t, "Apple", recs[1].Name)
}

func TestParseRecommendations_Idempotent(t *testing.T) {
	raw := "- Task Name: Pay bills\n- Reason: Due today\n\nnoise\n\n- Task Name: Read\n- Reason: Relaxing"

	first, firstSkipped := ParseRecommendations(raw)
	second, secondSkipped := ParseRecommendations(raw)

	assert.Equal(t, first, second)
	assert.Equal(t, firstSkipped, secondSkipped)
}
