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

import "fmt"

// AllChannels - channel value meaning the ROI applies to every channel of the plane
const AllChannels = -1

// ImagePlane - identifies a 2D slice within a multi-dimensional image as a
// (channel, z-slice, timepoint) triple. It's a plain comparable value:
// two planes with equal fields are interchangeable, so it can be a map key
// and compared with ==. ROIs on different planes are never spatially
// comparable.
type ImagePlane struct {
	C int `json:"c" bson:"c"`
	Z int `json:"z" bson:"z"`
	T int `json:"t" bson:"t"`
}

// PlaneWithChannel - plane identity for a specific channel
func PlaneWithChannel(c int, z int, t int) ImagePlane {
	return ImagePlane{C: c, Z: z, T: t}
}

// Plane - plane identity spanning all channels
func Plane(z int, t int) ImagePlane {
	return ImagePlane{C: AllChannels, Z: z, T: t}
}

// DefaultPlane - first z-slice and timepoint, all channels. What single
// plane images use.
func DefaultPlane() ImagePlane {
	return ImagePlane{C: AllChannels, Z: 0, T: 0}
}

func (p ImagePlane) String() string {
	return fmt.Sprintf("ImagePlane(c=%v, z=%v, t=%v)", p.C, p.Z, p.T)
}
