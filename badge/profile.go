// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package badge

import (
	"bufio"
	"io"
	"strings"
)

// ProfileLines is the number of lines in a profile file.
const ProfileLines = 7

// Profile is the text shown on one badge.
type Profile struct {
	Company      string
	Name         string
	Detail1Title string
	Detail1Text  string
	Detail2Title string
	Detail2Text  string
	URL          string
}

// DefaultProfile is written to a slot that has no profile yet.
var DefaultProfile = Profile{
	Company:      "mustelid inc",
	Name:         "H. Badger",
	Detail1Title: "RP2040",
	Detail1Text:  "2MB Flash",
	Detail2Title: "E ink",
	Detail2Text:  "296x128px",
	URL:          "http://broken.com",
}

// ParseProfile reads a profile, one field per line in the order of Lines.
//
// Missing lines leave the field empty and lines past the seventh are ignored.
func ParseProfile(r io.Reader) (Profile, error) {
	var lines [ProfileLines]string
	s := bufio.NewScanner(r)
	for i := 0; i < ProfileLines && s.Scan(); i++ {
		lines[i] = strings.TrimRight(s.Text(), "\r\n")
	}
	if err := s.Err(); err != nil {
		return Profile{}, err
	}
	return Profile{
		Company:      lines[0],
		Name:         lines[1],
		Detail1Title: lines[2],
		Detail1Text:  lines[3],
		Detail2Title: lines[4],
		Detail2Text:  lines[5],
		URL:          lines[6],
	}, nil
}

// Lines returns the seven fields in file order.
func (p *Profile) Lines() []string {
	return []string{p.Company, p.Name, p.Detail1Title, p.Detail1Text, p.Detail2Title, p.Detail2Text, p.URL}
}

// WriteTo writes the profile in the format read by ParseProfile.
func (p *Profile) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, strings.Join(p.Lines(), "\n")+"\n")
	return int64(n), err
}
