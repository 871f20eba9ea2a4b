// Package gpx encodes shifted activity telemetry as a GPX 1.1 track.
package gpx

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/timeshift/pkg/domain/model"
)

const (
	// ContentType is the MIME type of an encoded document
	ContentType = "application/gpx+xml"
	// DataType is the format discriminator the upload endpoint expects
	DataType = "gpx"

	creator        = "StravaGPX"
	gpxNamespace   = "http://www.topografix.com/GPX/1/1"
	tpxNamespace   = "http://www.garmin.com/xmlschemas/TrackPointExtension/v1"
	gpxxNamespace  = "http://www.garmin.com/xmlschemas/GpxExtensions/v3"
	xsiNamespace   = "http://www.w3.org/2001/XMLSchema-instance"
	schemaLocation = "http://www.topografix.com/GPX/1/1 http://www.topografix.com/GPX/1/1/gpx.xsd " +
		"http://www.garmin.com/xmlschemas/GpxExtensions/v3 http://www.garmin.com/xmlschemas/GpxExtensionsv3.xsd " +
		"http://www.garmin.com/xmlschemas/TrackPointExtension/v1 http://www.garmin.com/xmlschemas/TrackPointExtensionv1.xsd"

	timeLayout = "2006-01-02T15:04:05Z"
)

type document struct {
	XMLName        xml.Name `xml:"gpx"`
	Creator        string   `xml:"creator,attr"`
	XSI            string   `xml:"xmlns:xsi,attr"`
	SchemaLocation string   `xml:"xsi:schemaLocation,attr"`
	Version        string   `xml:"version,attr"`
	Xmlns          string   `xml:"xmlns,attr"`
	TPX            string   `xml:"xmlns:gpxtpx,attr"`
	GPXX           string   `xml:"xmlns:gpxx,attr"`
	Metadata       metadata `xml:"metadata"`
	Track          track    `xml:"trk"`
}

type metadata struct {
	Time string `xml:"time"`
}

type track struct {
	Name    string       `xml:"name"`
	Type    string       `xml:"type"`
	Segment []trackPoint `xml:"trkseg>trkpt"`
}

type trackPoint struct {
	Lat        string      `xml:"lat,attr"`
	Lon        string      `xml:"lon,attr"`
	Ele        string      `xml:"ele,omitempty"`
	Time       string      `xml:"time"`
	Extensions *extensions `xml:"extensions,omitempty"`
}

type extensions struct {
	Power string        `xml:"power,omitempty"`
	TPX   *tpxExtension `xml:"gpxtpx:TrackPointExtension,omitempty"`
}

type tpxExtension struct {
	ATemp string `xml:"gpxtpx:atemp,omitempty"`
	HR    string `xml:"gpxtpx:hr,omitempty"`
	Cad   string `xml:"gpxtpx:cad,omitempty"`
}

// Encode builds a GPX document from the activity and its telemetry. Every
// sample is timestamped at activity.StartTime + delta + its elapsed seconds.
// Optional values missing at a sample are left out of that point entirely.
func Encode(activity *model.Activity, streams *model.StreamSet, delta time.Duration) ([]byte, error) {
	if err := streams.Validate(); err != nil {
		return nil, goerr.Wrap(err, "cannot encode track", goerr.V("activity_id", activity.ID))
	}

	start := activity.StartTime.UTC().Add(delta)
	points := make([]trackPoint, streams.Len())
	for i := range points {
		pt := trackPoint{
			Lat:  strconv.FormatFloat(streams.LatLng[i][0], 'f', 7, 64),
			Lon:  strconv.FormatFloat(streams.LatLng[i][1], 'f', 7, 64),
			Time: start.Add(time.Duration(streams.Time[i]) * time.Second).Format(timeLayout),
		}
		if ele, ok := streams.Altitude.At(i); ok {
			pt.Ele = strconv.FormatFloat(ele, 'f', 1, 64)
		}

		ext := &extensions{}
		if power, ok := streams.Power.At(i); ok {
			ext.Power = formatNumber(power)
		}
		tpx := &tpxExtension{}
		if temp, ok := streams.Temp.At(i); ok {
			tpx.ATemp = formatNumber(temp)
		}
		if hr, ok := streams.HeartRate.At(i); ok {
			tpx.HR = formatNumber(hr)
		}
		if cad, ok := streams.Cadence.At(i); ok {
			tpx.Cad = formatNumber(cad)
		}
		if *tpx != (tpxExtension{}) {
			ext.TPX = tpx
		}
		if ext.Power != "" || ext.TPX != nil {
			pt.Extensions = ext
		}

		points[i] = pt
	}

	doc := document{
		Creator:        creator,
		XSI:            xsiNamespace,
		SchemaLocation: schemaLocation,
		Version:        "1.1",
		Xmlns:          gpxNamespace,
		TPX:            tpxNamespace,
		GPXX:           gpxxNamespace,
		Metadata: metadata{
			Time: activity.StartTime.UTC().Format(timeLayout),
		},
		Track: track{
			Name:    activity.Name,
			Type:    trackType(activity.Type),
			Segment: points,
		},
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", " ")
	if err := enc.Encode(doc); err != nil {
		return nil, goerr.Wrap(err, "failed to marshal GPX document", goerr.V("activity_id", activity.ID))
	}
	buf.WriteByte('\n')

	return buf.Bytes(), nil
}

// FileName returns the upload file name for a shifted activity
func FileName(activityID int64) string {
	return strconv.FormatInt(activityID, 10) + "-shifted.gpx"
}

func trackType(activityType string) string {
	if activityType == "Ride" {
		return "cycling"
	}
	return activityType
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
