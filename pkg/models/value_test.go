package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueStates(t *testing.T) {
	t.Run("Unset", func(t *testing.T) {
		var v Value[string]
		assert.True(t, v.IsZero())

		_, ok := v.Get()
		assert.False(t, ok)
	})

	t.Run("Set", func(t *testing.T) {
		v := Set("hello")
		assert.False(t, v.IsZero())

		got, ok := v.Get()
		assert.True(t, ok)
		assert.Equal(t, "hello", got)
	})

	t.Run("Cleared", func(t *testing.T) {
		v := Set(42)
		v.Clear()
		assert.True(t, v.IsZero())
		assert.Equal(t, 0, v.OrZero())
	})

	t.Run("SetNonEmpty", func(t *testing.T) {
		assert.True(t, SetNonEmpty("").IsZero())
		assert.False(t, SetNonEmpty("x").IsZero())
	})
}

func TestValueSerialization(t *testing.T) {
	t.Run("UnsetFieldOmitted", func(t *testing.T) {
		data, err := json.Marshal(StartDagRun{})
		require.NoError(t, err)
		assert.Equal(t, "{}", string(data))
	})

	t.Run("ClearedFieldOmitted", func(t *testing.T) {
		req := StartDagRun{Params: Set("x=1")}
		req.Params.Clear()

		data, err := json.Marshal(req)
		require.NoError(t, err)
		assert.Equal(t, "{}", string(data))
	})

	t.Run("SetFieldsEmitted", func(t *testing.T) {
		req := StartDagRun{
			DagName:   Set("d1"),
			Singleton: Set(true),
		}

		data, err := json.Marshal(req)
		require.NoError(t, err)
		assert.JSONEq(t, `{"dagName":"d1","singleton":true}`, string(data))
	})

	t.Run("SetFalseEmitted", func(t *testing.T) {
		// A set false is a value, not an absence.
		data, err := json.Marshal(StartDagRun{Singleton: Set(false)})
		require.NoError(t, err)
		assert.JSONEq(t, `{"singleton":false}`, string(data))
	})

	t.Run("UnmarshalMarksPresent", func(t *testing.T) {
		var req StartDagRun
		require.NoError(t, json.Unmarshal([]byte(`{"dagRunId":"r1"}`), &req))

		id, ok := req.DagRunId.Get()
		assert.True(t, ok)
		assert.Equal(t, "r1", id)
		assert.True(t, req.DagName.IsZero())
	})
}
