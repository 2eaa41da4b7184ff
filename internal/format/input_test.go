// Copyright 2026 The qris-dev Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package format

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadInputRaw_RawString(t *testing.T) {
	raw, err := ReadInputRaw(testStatic)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw != testStatic {
		t.Errorf("expected raw string back, got %q", raw)
	}
}

func TestReadInputRaw_HTTPURLPassthrough(t *testing.T) {
	url := "https://example.com/qris.png"
	raw, err := ReadInputRaw(url)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw != url {
		t.Errorf("expected URL passthrough, got %q", raw)
	}
}

func TestReadInputRaw_FileRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "qris.txt")
	if err := os.WriteFile(path, []byte("  "+testStatic+"  \n"), 0644); err != nil {
		t.Fatal(err)
	}

	raw, err := ReadInputRaw(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw != testStatic {
		t.Errorf("expected trimmed file content, got %q", raw)
	}
}

func TestReadInputRaw_Whitespace(t *testing.T) {
	raw, err := ReadInputRaw("  0002010102  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw != "0002010102" {
		t.Errorf("expected trimmed input, got %q", raw)
	}
}

func TestReadInput_FileRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "qris.txt")
	if err := os.WriteFile(path, []byte("  file-content  \n"), 0644); err != nil {
		t.Fatal(err)
	}

	raw, err := ReadInput(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw != "file-content" {
		t.Errorf("expected trimmed file content, got %q", raw)
	}
}

func TestReadInput_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testStatic + "\n"))
	}))
	defer srv.Close()

	raw, err := ReadInput(srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw != testStatic {
		t.Errorf("got %q", raw)
	}
}

func TestReadInput_URLNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := ReadInput(srv.URL)
	if err == nil || !strings.Contains(err.Error(), "HTTP 404") {
		t.Errorf("expected HTTP 404 error, got %v", err)
	}
}

func TestReadFile_NotFound(t *testing.T) {
	_, err := readFile("/nonexistent/path/file.txt")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestReadImage(t *testing.T) {
	data := []byte("\x89PNG fake")

	t.Run("data URL", func(t *testing.T) {
		got, err := ReadImage(EncodeDataURL("image/png", data))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, data) {
			t.Errorf("got %q", got)
		}
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "qris.png")
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatal(err)
		}
		got, err := ReadImage(path)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, data) {
			t.Errorf("got %q", got)
		}
	})

	t.Run("URL", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/png")
			w.Write(data)
		}))
		defer srv.Close()

		got, err := ReadImage(srv.URL + "/qris.png")
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, data) {
			t.Errorf("got %q", got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := ReadImage("/nonexistent/qris.png"); err == nil {
			t.Error("expected error")
		}
	})
}
