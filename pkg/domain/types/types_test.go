package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/timeshift/pkg/domain/types"
)

func TestAspectType_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		aspect types.AspectType
		want   bool
	}{
		{name: "create", aspect: types.AspectTypeCreate, want: true},
		{name: "update", aspect: types.AspectTypeUpdate, want: true},
		{name: "delete", aspect: types.AspectTypeDelete, want: true},
		{name: "unknown", aspect: types.AspectType("rename"), want: false},
		{name: "empty", aspect: types.AspectType(""), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, tt.aspect.IsValid()).Equal(tt.want)
		})
	}
}

func TestParseAspectType(t *testing.T) {
	a, err := types.ParseAspectType("create")
	gt.NoError(t, err)
	gt.Value(t, a).Equal(types.AspectTypeCreate)

	_, err = types.ParseAspectType("bogus")
	gt.Error(t, err)
}

func TestUploadState_IsTerminal(t *testing.T) {
	gt.B(t, types.UploadStateProcessing.IsTerminal()).False()
	gt.B(t, types.UploadStateReady.IsTerminal()).True()
	gt.B(t, types.UploadStateFailed.IsTerminal()).True()
	gt.B(t, types.UploadStateTimedOut.IsTerminal()).True()
}

func TestRunStatus(t *testing.T) {
	for _, s := range types.AllRunStatuses() {
		t.Run(s.String(), func(t *testing.T) {
			gt.B(t, s.IsValid()).True()
			parsed, err := types.ParseRunStatus(s.String())
			gt.NoError(t, err)
			gt.Value(t, parsed).Equal(s)
		})
	}

	gt.B(t, types.RunStatusUploading.IsFinal()).False()
	gt.B(t, types.RunStatusTimedOut.IsFinal()).True()

	_, err := types.ParseRunStatus("lost")
	gt.Error(t, err)
}
