package models

import (
	"encoding/json"
	"strings"
	"testing"

	"gatepass-app/types"
)

func TestGatePassHeaderDestinationIDSerializesAsString(t *testing.T) {
	// snowflake ids exceed 2^53; a JSON number would lose precision in
	// any float64-based decoder
	header := GatePassHeader{
		ID:            "a1",
		GatepassNo:    "SDLGP05032024-0001",
		DestinationID: types.SnowflakeID(1881942732142415873),
	}

	data, err := json.Marshal(header)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"destinationId":"1881942732142415873"`) {
		t.Fatalf("destinationId not serialized as a string: %s", data)
	}
}

func TestGatePassHeaderDestinationIDAcceptsBothWireForms(t *testing.T) {
	for _, payload := range []string{
		`{"destinationId":"42"}`,
		`{"destinationId":42}`,
	} {
		var header GatePassHeader
		if err := json.Unmarshal([]byte(payload), &header); err != nil {
			t.Fatalf("unmarshal %s: %v", payload, err)
		}
		if header.DestinationID != 42 {
			t.Fatalf("payload %s: expected 42, got %d", payload, header.DestinationID)
		}
	}
}
