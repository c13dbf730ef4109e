// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package preview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/GermanBionicSystems/badge/input"
)

func decode(t *testing.T, mediaType string, content []byte) image.Image {
	t.Helper()
	var img image.Image
	var err error
	switch mediaType {
	case "image/png":
		img, err = png.Decode(bytes.NewReader(content))
	case "image/jpeg":
		img, err = jpeg.Decode(bytes.NewReader(content))
	default:
		t.Fatalf("unknown media type %q", mediaType)
	}
	if err != nil {
		t.Fatalf("Decoding image failed: %v", err)
	}
	return img
}

func TestStream(t *testing.T) {
	for _, tc := range []struct {
		name          string
		opt           Options
		target        string
		wantMediaType string
		wantSize      image.Point
	}{
		{
			name:          "defaults",
			opt:           Options{Width: 296, Height: 128},
			target:        "/stream",
			wantMediaType: "image/png",
			wantSize:      image.Pt(296, 128),
		},
		{
			name:          "scaled JPEG",
			opt:           Options{Width: 20, Height: 10, Scale: 2, Format: JPEG},
			target:        "/stream",
			wantMediaType: "image/jpeg",
			wantSize:      image.Pt(40, 20),
		},
		{
			name:          "format param PNG",
			opt:           Options{Width: 12, Height: 34, Format: JPEG},
			target:        "/stream?format=png",
			wantMediaType: "image/png",
			wantSize:      image.Pt(12, 34),
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			t.Cleanup(cancel)

			d := New(&tc.opt)
			srv := httptest.NewServer(d.Handler())
			t.Cleanup(srv.Close)
			t.Cleanup(srv.CloseClientConnections)

			quit := make(chan struct{})
			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer wg.Done()
				for {
					if err := d.Draw(d.Bounds(), image.White, image.Point{}); err != nil {
						t.Errorf("Draw() failed: %v", err)
					}
					select {
					case <-quit:
						return
					case <-ctx.Done():
						return
					case <-time.After(10 * time.Millisecond):
					}
				}
			}()

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+tc.target, nil)
			if err != nil {
				t.Fatal(err)
			}
			resp, err := srv.Client().Do(req)
			if err != nil {
				t.Fatalf("Get() failed: %v", err)
			}
			defer resp.Body.Close()

			mediaType, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
			if err != nil {
				t.Fatalf("ParseMediaType() failed: %v", err)
			}
			if mediaType != "multipart/x-mixed-replace" {
				t.Fatalf("Content-Type is %q", mediaType)
			}
			if len(params["boundary"]) <= 50 {
				t.Fatalf("Insufficient boundary: %q", params["boundary"])
			}

			mr := multipart.NewReader(resp.Body, params["boundary"])
			parts := 0
			for {
				part, err := mr.NextPart()
				if errors.Is(err, io.EOF) || (err != nil && strings.HasSuffix(err.Error(), " EOF")) {
					break
				}
				if err != nil {
					t.Fatalf("NextPart() failed: %v", err)
				}
				if got, _, _ := mime.ParseMediaType(part.Header.Get("Content-Type")); got != tc.wantMediaType {
					t.Fatalf("part Content-Type %q, want %q", got, tc.wantMediaType)
				}
				length, err := strconv.Atoi(part.Header.Get("Content-Length"))
				if err != nil {
					t.Fatal(err)
				}
				content, err := io.ReadAll(part)
				if err != nil {
					t.Fatal(err)
				}
				if len(content) != length {
					t.Fatalf("Read %d bytes, Content-Length header is %d", len(content), length)
				}
				if got := decode(t, tc.wantMediaType, content).Bounds().Size(); got != tc.wantSize {
					t.Fatalf("Got image size %v, want %v", got, tc.wantSize)
				}
				if parts++; parts == 5 {
					close(quit)
					if err := d.Halt(); err != nil {
						t.Errorf("Halt() failed: %v", err)
					}
				}
			}
			if parts < 5 {
				t.Errorf("got %d parts", parts)
			}
			wg.Wait()
		})
	}
}

func TestFrame(t *testing.T) {
	d := New(&Options{Width: 8, Height: 4, Scale: 3})
	if err := d.Draw(image.Rect(0, 0, 4, 4), image.White, image.Point{}); err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(d.Handler())
	t.Cleanup(srv.Close)

	resp, err := srv.Client().Get(srv.URL + "/frame")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	content, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	img := decode(t, resp.Header.Get("Content-Type"), content)
	if got := img.Bounds().Size(); got != image.Pt(24, 12) {
		t.Fatalf("size %v", got)
	}
	for _, tc := range []struct {
		x, y int
		want uint8
	}{
		{0, 0, 0xff},
		{11, 11, 0xff},
		{12, 0, 0},
		{23, 11, 0},
	} {
		if got := color.GrayModel.Convert(img.At(tc.x, tc.y)).(color.Gray).Y; got != tc.want {
			t.Errorf("At(%d, %d) = %#x, want %#x", tc.x, tc.y, got, tc.want)
		}
	}
	if d.Frames() != 1 {
		t.Errorf("Frames() = %d", d.Frames())
	}
}

func TestPress(t *testing.T) {
	presses := input.NewChan(4)
	d := New(&Options{Width: 8, Height: 8, Presses: presses})
	srv := httptest.NewServer(d.Handler())
	t.Cleanup(srv.Close)

	resp, err := srv.Client().Post(srv.URL+"/press/up", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status %d", resp.StatusCode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	select {
	case e := <-presses.Events(ctx):
		if e.Button != input.Up {
			t.Fatalf("got %s", e)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no press")
	}
}

func TestRequestStatus(t *testing.T) {
	for _, tc := range []struct {
		method     string
		target     string
		presses    bool
		wantStatus int
	}{
		{method: http.MethodGet, target: "/", wantStatus: http.StatusOK},
		{method: http.MethodGet, target: "/frame?format=", wantStatus: http.StatusOK},
		{method: http.MethodGet, target: "/frame?format=jpeg", wantStatus: http.StatusOK},
		{method: http.MethodGet, target: "/frame?format=bmp", wantStatus: http.StatusBadRequest},
		{method: http.MethodGet, target: "/stream?format=bmp", wantStatus: http.StatusBadRequest},
		{method: http.MethodPost, target: "/stream", wantStatus: http.StatusMethodNotAllowed},
		{method: http.MethodPost, target: "/press/a", wantStatus: http.StatusNotFound},
		{method: http.MethodPost, target: "/press/left", presses: true, wantStatus: http.StatusBadRequest},
		{method: http.MethodGet, target: "/press/a", presses: true, wantStatus: http.StatusMethodNotAllowed},
		{method: http.MethodGet, target: "/missing", wantStatus: http.StatusNotFound},
	} {
		t.Run(fmt.Sprint(tc), func(t *testing.T) {
			opt := Options{Width: 16, Height: 16}
			if tc.presses {
				opt.Presses = input.NewChan(1)
			}
			srv := httptest.NewServer(New(&opt).Handler())
			t.Cleanup(srv.Close)

			req, err := http.NewRequest(tc.method, srv.URL+tc.target, nil)
			if err != nil {
				t.Fatal(err)
			}
			resp, err := srv.Client().Do(req)
			if err != nil {
				t.Fatalf("Do() failed: %v", err)
			}
			resp.Body.Close()
			if got := resp.StatusCode; got != tc.wantStatus {
				t.Errorf("%s %s returned status %d, want %d", tc.method, tc.target, got, tc.wantStatus)
			}
		})
	}
}
