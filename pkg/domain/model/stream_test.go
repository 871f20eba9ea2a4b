package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/timeshift/pkg/domain/model"
)

func TestStreamSet_Validate(t *testing.T) {
	base := func() *model.StreamSet {
		return &model.StreamSet{
			Time:     []int64{0, 1, 2},
			LatLng:   []model.LatLng{{35.1, 139.1}, {35.2, 139.2}, {35.3, 139.3}},
			Altitude: model.NewChannel(10, 11, 12),
		}
	}

	t.Run("valid", func(t *testing.T) {
		gt.NoError(t, base().Validate())
	})

	t.Run("nil sample in optional channel", func(t *testing.T) {
		s := base()
		s.HeartRate = model.Channel{nil, model.NewChannel(120)[0], nil}
		gt.NoError(t, s.Validate())

		_, ok := s.HeartRate.At(0)
		gt.Bool(t, ok).False()
		v, ok := s.HeartRate.At(1)
		gt.Bool(t, ok).True()
		gt.Value(t, v).Equal(120.0)
	})

	t.Run("missing time", func(t *testing.T) {
		s := base()
		s.Time = nil
		gt.Error(t, s.Validate()).Is(model.ErrMissingStream)
	})

	t.Run("missing latlng", func(t *testing.T) {
		s := base()
		s.LatLng = nil
		gt.Error(t, s.Validate()).Is(model.ErrMissingStream)
	})

	t.Run("short optional channel", func(t *testing.T) {
		s := base()
		s.Power = model.NewChannel(100, 200)
		gt.Error(t, s.Validate()).Is(model.ErrStreamMisaligned)
	})

	t.Run("short latlng", func(t *testing.T) {
		s := base()
		s.LatLng = s.LatLng[:2]
		gt.Error(t, s.Validate()).Is(model.ErrStreamMisaligned)
	})
}
