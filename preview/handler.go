// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package preview

import (
	"html/template"
	"mime"
	"net/http"
	"net/textproto"
	"net/url"

	"github.com/GermanBionicSystems/badge/input"
)

type client struct {
	refresh   chan struct{}
	terminate chan struct{}
}

func (d *Display) formatFromQuery(values url.Values) (ImageFormat, error) {
	if value := values.Get("format"); value != "" {
		return ParseImageFormat(value)
	}
	return d.defaultFormat, nil
}

// Handler returns the HTTP handler of the display:
//
//	GET  /               page showing the stream with a button bar
//	GET  /stream         multipart image stream, "?format=png|jpeg"
//	GET  /frame          the current panel as one image
//	POST /press/{button} presses a button (a, b, c, up, down)
func (d *Display) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", d.servePage)
	mux.HandleFunc("GET /stream", d.serveStream)
	mux.HandleFunc("GET /frame", d.serveFrame)
	mux.HandleFunc("POST /press/{button}", d.servePress)
	return mux
}

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html><head><title>badge</title></head>
<body style="background:#333">
<img src="stream" style="image-rendering:pixelated;width:{{.Width}}px">
<div>
{{range .Buttons}}<button onclick="fetch('press/{{.}}',{method:'POST'})">{{.}}</button>
{{end}}</div>
</body></html>
`))

func (d *Display) servePage(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Width   int
		Buttons []input.Button
	}{Width: d.Bounds().Dx() * 3}
	if d.presses != nil {
		data.Buttons = input.Buttons
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Execute(w, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (d *Display) serveFrame(w http.ResponseWriter, r *http.Request) {
	format, err := d.formatFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	payload, err := d.encode(format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", format.mimeType())
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(payload)
}

func (d *Display) servePress(w http.ResponseWriter, r *http.Request) {
	if d.presses == nil {
		http.Error(w, "buttons are disabled", http.StatusNotFound)
		return
	}
	b, err := input.ParseButton(r.PathValue("button"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !d.presses.Press(b) {
		http.Error(w, "too many presses", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// serveStream sends a stream of images representing the panel, a new one
// after every Draw.
func (d *Display) serveStream(w http.ResponseWriter, r *http.Request) {
	format, err := d.formatFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	pw := makePartWriter(w)

	w.Header().Set("Content-Type",
		mime.FormatMediaType("multipart/x-mixed-replace", map[string]string{
			"boundary": pw.boundary,
		}))

	c := &client{
		refresh:   make(chan struct{}, 1),
		terminate: make(chan struct{}, 1),
	}

	d.mu.Lock()
	d.clients[c] = struct{}{}
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		delete(d.clients, c)
		d.mu.Unlock()
	}()

	partHeaders := make(textproto.MIMEHeader)
	partHeaders.Set("Content-Type", format.mimeType())

	for {
		// Errors end the stream silently; there is no way to report them
		// inside an image stream.
		payload, err := d.encode(format)
		if err != nil {
			return
		}
		if err := pw.writeFrame(partHeaders, payload); err != nil {
			return
		}

		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}

		select {
		case <-c.refresh:
		case <-c.terminate:
			return
		case <-r.Context().Done():
			return
		}
	}
}
