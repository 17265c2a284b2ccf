package modinspect

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestModuleStateString(t *testing.T) {
	tests := []struct {
		state ModuleState
		want  string
	}{
		{StateLive, "Live"},
		{StateLoading, "Loading"},
		{StateUnloading, "Unloading"},
		{ModuleState(9), "ModuleState(9)"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("ModuleState(%d).String() = %q, want %q", int(tt.state), got, tt.want)
		}
	}
}

func TestLiveModuleJSON(t *testing.T) {
	rec := LiveModule{
		Name:    "ext4",
		Size:    1015808,
		Refs:    1,
		State:   StateLive,
		Address: "0x0000000000000000",
	}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	out := string(data)
	if !strings.Contains(out, `"state":"Live"`) {
		t.Errorf("JSON %s does not render the state token", out)
	}
	if strings.Contains(out, "dependents") {
		t.Errorf("JSON %s should omit empty dependents", out)
	}
}
