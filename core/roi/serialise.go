// Licensed to NASA JPL under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. NASA JPL licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package roi

import (
	"encoding/json"
	"fmt"

	"github.com/microvis/core/core/geom"
)

// Serialisation proxies: the persisted representation is decoupled from the
// in-memory shapes so internal fields can evolve without breaking saved
// annotation data. The Envelope is the ONLY reconstruction path - the
// variant structs themselves refuse direct unmarshalling, so a corrupt or
// foreign stream can't smuggle a partially-initialised shape into the
// object graph.

// IntegrityError - annotation data that can't be reconstructed through the
// proxy path. Deliberately a distinct type from ordinary I/O errors so
// callers can report "corrupt annotation data" rather than a generic read
// failure.
type IntegrityError struct {
	Reason string
}

func (e *IntegrityError) Error() string {
	return "corrupt annotation data: " + e.Reason
}

func makeIntegrityError(format string, a ...interface{}) *IntegrityError {
	return &IntegrityError{Reason: fmt.Sprintf(format, a...)}
}

// bowProxy - the stable persisted form of a bow: the 7 scalars of the
// serialisation contract. Name is a legacy field, always written empty and
// ignored when read.
type bowProxy struct {
	HeadX float64 `json:"headX" bson:"headX"`
	HeadY float64 `json:"headY" bson:"headY"`
	TailX float64 `json:"tailX" bson:"tailX"`
	TailY float64 `json:"tailY" bson:"tailY"`
	Name  string  `json:"name,omitempty" bson:"name,omitempty"`
	C     int     `json:"c" bson:"c"`
	Z     int     `json:"z" bson:"z"`
	T     int     `json:"t" bson:"t"`
}

type lineProxy struct {
	X1 float64 `json:"x1" bson:"x1"`
	Y1 float64 `json:"y1" bson:"y1"`
	X2 float64 `json:"x2" bson:"x2"`
	Y2 float64 `json:"y2" bson:"y2"`
	C  int     `json:"c" bson:"c"`
	Z  int     `json:"z" bson:"z"`
	T  int     `json:"t" bson:"t"`
}

// rectLikeProxy - shared by rectangle and ellipse, both are defined by
// their bounding box
type rectLikeProxy struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
	W float64 `json:"w" bson:"w"`
	H float64 `json:"h" bson:"h"`
	C int     `json:"c" bson:"c"`
	Z int     `json:"z" bson:"z"`
	T int     `json:"t" bson:"t"`
}

// pointListProxy - shared by polygon and point-set ROIs
type pointListProxy struct {
	Points []geom.Point2 `json:"points" bson:"points"`
	C      int           `json:"c" bson:"c"`
	Z      int           `json:"z" bson:"z"`
	T      int           `json:"t" bson:"t"`
}

// Envelope type tags. These are part of the on-disk format, never renumber
// or reuse them.
const (
	envelopeTypeBow       = "bow"
	envelopeTypeLine      = "line"
	envelopeTypeRectangle = "rectangle"
	envelopeTypeEllipse   = "ellipse"
	envelopeTypePolygon   = "polygon"
	envelopeTypePoints    = "points"
)

// Envelope - tagged union of the variant proxies. Exactly one payload
// pointer is set, matching Type. Carries both JSON and BSON tags so the
// same contract round-trips through files and mongo documents.
type Envelope struct {
	Type      string          `json:"type" bson:"type"`
	Bow       *bowProxy       `json:"bow,omitempty" bson:"bow,omitempty"`
	Line      *lineProxy      `json:"line,omitempty" bson:"line,omitempty"`
	Rectangle *rectLikeProxy  `json:"rectangle,omitempty" bson:"rectangle,omitempty"`
	Ellipse   *rectLikeProxy  `json:"ellipse,omitempty" bson:"ellipse,omitempty"`
	Polygon   *pointListProxy `json:"polygon,omitempty" bson:"polygon,omitempty"`
	Points    *pointListProxy `json:"points,omitempty" bson:"points,omitempty"`
}

// ToEnvelope - the persisted form of any ROI variant
func ToEnvelope(r ROI) (*Envelope, error) {
	switch v := r.(type) {
	case *BowROI:
		return &Envelope{
			Type: envelopeTypeBow,
			Bow: &bowProxy{
				HeadX: v.headX,
				HeadY: v.headY,
				TailX: v.tailX,
				TailY: v.tailY,
				C:     v.plane.C,
				Z:     v.plane.Z,
				T:     v.plane.T,
			},
		}, nil
	case *LineROI:
		return &Envelope{
			Type: envelopeTypeLine,
			Line: &lineProxy{X1: v.x1, Y1: v.y1, X2: v.x2, Y2: v.y2, C: v.plane.C, Z: v.plane.Z, T: v.plane.T},
		}, nil
	case *RectangleROI:
		return &Envelope{
			Type:      envelopeTypeRectangle,
			Rectangle: &rectLikeProxy{X: v.rect.X, Y: v.rect.Y, W: v.rect.W, H: v.rect.H, C: v.plane.C, Z: v.plane.Z, T: v.plane.T},
		}, nil
	case *EllipseROI:
		return &Envelope{
			Type:    envelopeTypeEllipse,
			Ellipse: &rectLikeProxy{X: v.rect.X, Y: v.rect.Y, W: v.rect.W, H: v.rect.H, C: v.plane.C, Z: v.plane.Z, T: v.plane.T},
		}, nil
	case *PolygonROI:
		return &Envelope{
			Type:    envelopeTypePolygon,
			Polygon: &pointListProxy{Points: v.AllPoints(), C: v.plane.C, Z: v.plane.Z, T: v.plane.T},
		}, nil
	case *PointsROI:
		return &Envelope{
			Type:   envelopeTypePoints,
			Points: &pointListProxy{Points: v.AllPoints(), C: v.plane.C, Z: v.plane.Z, T: v.plane.T},
		}, nil
	}

	return nil, fmt.Errorf("no serialisation proxy for ROI variant: %v", r.RoiName())
}

// ToROI - reconstructs the live shape from the persisted form. This is the
// single reconstruction path, everything it admits has been validated.
func (e *Envelope) ToROI() (ROI, error) {
	switch e.Type {
	case envelopeTypeBow:
		if e.Bow == nil {
			return nil, makeIntegrityError("bow ROI missing payload")
		}
		// The legacy name field is ignored on read
		p := e.Bow
		if err := checkFinitePoints(geom.Point2{X: p.HeadX, Y: p.HeadY}, geom.Point2{X: p.TailX, Y: p.TailY}); err != nil {
			return nil, makeIntegrityError("bow ROI: %v", err)
		}
		return makeBow(p.HeadX, p.HeadY, p.TailX, p.TailY, PlaneWithChannel(p.C, p.Z, p.T)), nil

	case envelopeTypeLine:
		if e.Line == nil {
			return nil, makeIntegrityError("line ROI missing payload")
		}
		p := e.Line
		roi, err := NewLine(p.X1, p.Y1, p.X2, p.Y2, PlaneWithChannel(p.C, p.Z, p.T))
		if err != nil {
			return nil, makeIntegrityError("line ROI: %v", err)
		}
		return roi, nil

	case envelopeTypeRectangle:
		if e.Rectangle == nil {
			return nil, makeIntegrityError("rectangle ROI missing payload")
		}
		p := e.Rectangle
		roi, err := NewRectangle(p.X, p.Y, p.W, p.H, PlaneWithChannel(p.C, p.Z, p.T))
		if err != nil {
			return nil, makeIntegrityError("rectangle ROI: %v", err)
		}
		return roi, nil

	case envelopeTypeEllipse:
		if e.Ellipse == nil {
			return nil, makeIntegrityError("ellipse ROI missing payload")
		}
		p := e.Ellipse
		roi, err := NewEllipse(p.X, p.Y, p.W, p.H, PlaneWithChannel(p.C, p.Z, p.T))
		if err != nil {
			return nil, makeIntegrityError("ellipse ROI: %v", err)
		}
		return roi, nil

	case envelopeTypePolygon:
		if e.Polygon == nil {
			return nil, makeIntegrityError("polygon ROI missing payload")
		}
		p := e.Polygon
		roi, err := NewPolygon(p.Points, PlaneWithChannel(p.C, p.Z, p.T))
		if err != nil {
			return nil, makeIntegrityError("polygon ROI: %v", err)
		}
		return roi, nil

	case envelopeTypePoints:
		if e.Points == nil {
			return nil, makeIntegrityError("points ROI missing payload")
		}
		p := e.Points
		roi, err := NewPoints(p.Points, PlaneWithChannel(p.C, p.Z, p.T))
		if err != nil {
			return nil, makeIntegrityError("points ROI: %v", err)
		}
		return roi, nil
	}

	return nil, makeIntegrityError("unknown ROI type: \"%v\"", e.Type)
}

// MarshalROI - writes the proxy envelope as JSON
func MarshalROI(r ROI) ([]byte, error) {
	envelope, err := ToEnvelope(r)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope)
}

// UnmarshalROI - reads a proxy envelope back into a live ROI. Malformed
// data comes back as an IntegrityError, distinct from I/O failures the
// caller may hit getting the bytes here.
func UnmarshalROI(data []byte) (ROI, error) {
	var envelope Envelope
	err := json.Unmarshal(data, &envelope)
	if err != nil {
		return nil, makeIntegrityError("failed to parse ROI envelope: %v", err)
	}
	return envelope.ToROI()
}

// Every variant marshals via its proxy and refuses to unmarshal directly,
// mirroring the envelope-only reconstruction rule at the json.Marshaler
// level too.

func (b *BowROI) MarshalJSON() ([]byte, error) { return MarshalROI(b) }
func (b *BowROI) UnmarshalJSON([]byte) error {
	return makeIntegrityError("proxy required for reading Bow ROI")
}

func (l *LineROI) MarshalJSON() ([]byte, error) { return MarshalROI(l) }
func (l *LineROI) UnmarshalJSON([]byte) error {
	return makeIntegrityError("proxy required for reading Line ROI")
}

func (r *RectangleROI) MarshalJSON() ([]byte, error) { return MarshalROI(r) }
func (r *RectangleROI) UnmarshalJSON([]byte) error {
	return makeIntegrityError("proxy required for reading Rectangle ROI")
}

func (e *EllipseROI) MarshalJSON() ([]byte, error) { return MarshalROI(e) }
func (e *EllipseROI) UnmarshalJSON([]byte) error {
	return makeIntegrityError("proxy required for reading Ellipse ROI")
}

func (p *PolygonROI) MarshalJSON() ([]byte, error) { return MarshalROI(p) }
func (p *PolygonROI) UnmarshalJSON([]byte) error {
	return makeIntegrityError("proxy required for reading Polygon ROI")
}

func (p *PointsROI) MarshalJSON() ([]byte, error) { return MarshalROI(p) }
func (p *PointsROI) UnmarshalJSON([]byte) error {
	return makeIntegrityError("proxy required for reading Points ROI")
}
