// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bind

// Channel is a transform channel of a host object that a binding drives.
type Channel int32

const (
	TranslateX Channel = iota
	TranslateY
	TranslateZ
	RotateX
	RotateY
	RotateZ
	ScaleX
	ScaleY
	ScaleZ
	Visibility

	// Custom is any other attribute, named by [Binding.Attr].
	Custom

	ChannelN
)

var channelNames = [ChannelN]string{
	"TranslateX", "TranslateY", "TranslateZ", "RotateX", "RotateY", "RotateZ",
	"ScaleX", "ScaleY", "ScaleZ", "Visibility", "Custom",
}

func (c Channel) String() string {
	if c < 0 || c >= ChannelN {
		return "Channel(?)"
	}
	return channelNames[c]
}

// Axis returns the axis (0, 1, 2) of a translate, rotate or scale
// channel, or -1 for other channels.
func (c Channel) Axis() int {
	if c > ScaleZ || c < 0 {
		return -1
	}
	return int(c) % 3
}

// compounds are the long and short names of the transform compounds,
// in channel order.
var compounds = [3][2]string{{"translate", "t"}, {"rotate", "r"}, {"scale", "s"}}

// ChannelOf returns the channel for the given transform attribute name,
// which is one of the channels (tx, translateX, v, visibility) or one
// of the compounds (t, translate), for which the X channel is returned
// with compound set. Other names return Custom.
func ChannelOf(attr string) (ch Channel, compound bool) {
	switch attr {
	case "v", "visibility":
		return Visibility, false
	}
	for i, names := range compounds {
		for j, name := range names {
			if attr == name {
				return Channel(3 * i), true
			}
			if len(attr) != len(name)+1 || attr[:len(name)] != name {
				continue
			}
			sfxs := "XYZ"
			if j == 1 {
				sfxs = "xyz"
			}
			for ax := range 3 {
				if attr[len(name)] == sfxs[ax] {
					return Channel(3*i + ax), false
				}
			}
		}
	}
	return Custom, false
}
