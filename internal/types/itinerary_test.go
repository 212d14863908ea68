package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCostCategory_UnmarshalJSON(t *testing.T) {
	t.Run("flat amount", func(t *testing.T) {
		var c CostCategory
		require.NoError(t, json.Unmarshal([]byte(`20`), &c))
		assert.True(t, c.Flat)
		assert.Equal(t, 20.0, c.Total)
		assert.Equal(t, 20.0, c.Sum())
	})

	t.Run("nested items", func(t *testing.T) {
		var c CostCategory
		require.NoError(t, json.Unmarshal([]byte(`{"lunch": 10, "dinner": 30}`), &c))
		assert.False(t, c.Flat)
		assert.Equal(t, 40.0, c.Sum())
		assert.Equal(t, []string{"dinner", "lunch"}, c.SortedItems())
	})

	t.Run("invalid shape", func(t *testing.T) {
		var c CostCategory
		assert.Error(t, json.Unmarshal([]byte(`"twenty"`), &c))
	})
}

func TestCostCategory_MarshalRoundTrip(t *testing.T) {
	var breakdown CostBreakdown
	payload := []byte(`{"food": {"lunch": 10}, "transport": 20}`)
	require.NoError(t, json.Unmarshal(payload, &breakdown))

	out, err := json.Marshal(breakdown)
	require.NoError(t, err)

	var again CostBreakdown
	require.NoError(t, json.Unmarshal(out, &again))
	assert.Equal(t, breakdown, again)
	assert.Equal(t, []string{"food", "transport"}, again.SortedCategories())
}

func TestItineraryDocument_ParsesModelShape(t *testing.T) {
	payload := []byte(`{
		"destination": "Paris",
		"days": 2,
		"budget": 1000,
		"interests": ["Food", "Heritage"],
		"plan": [
			{"day": 1, "activities": ["Louvre", "Seine cruise"]},
			{"day": 2, "activities": ["Montmartre walk"]}
		],
		"cost_breakdown": {
			"transport": {"flights": 200},
			"food": 150
		}
	}`)

	var doc ItineraryDocument
	require.NoError(t, json.Unmarshal(payload, &doc))
	assert.Equal(t, "Paris", doc.Destination)
	require.Len(t, doc.Plan, 2)
	assert.Equal(t, 1, doc.Plan[0].Day)
	assert.True(t, doc.CostBreakdown["food"].Flat)
	assert.False(t, doc.CostBreakdown["transport"].Flat)
}
