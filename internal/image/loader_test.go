package image

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeTestPNG writes a small solid-colour PNG and returns its path.
func writeTestPNG(t *testing.T, dir, name string, width, height int, c color.RGBA) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}

	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test image: %v", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return path
}

func TestFileLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "red.png", 4, 3, color.RGBA{R: 255, A: 255})

	loader := NewFileLoader()
	img, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 4 || bounds.Dy() != 3 {
		t.Errorf("Load() dimensions = %dx%d, want 4x3", bounds.Dx(), bounds.Dy())
	}
}

func TestFileLoaderErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{"empty path", ""},
		{"missing file", filepath.Join(dir, "nope.png")},
		{"directory", dir},
	}

	loader := NewFileLoader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loader.Load(tt.path); err == nil {
				t.Errorf("Load(%q) expected error, got nil", tt.path)
			}
		})
	}
}

func TestFileLoaderRejectsNonImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.png")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if _, err := NewFileLoader().Load(path); err == nil {
		t.Error("Load() expected decode error for non-image data, got nil")
	}
}

func TestValidateImagePath(t *testing.T) {
	dir := t.TempDir()
	valid := writeTestPNG(t, dir, "ok.png", 2, 2, color.RGBA{G: 128, A: 255})

	if err := ValidateImagePath(valid); err != nil {
		t.Errorf("ValidateImagePath(valid file) error = %v", err)
	}
	if err := ValidateImagePath(dir); err != nil {
		t.Errorf("ValidateImagePath(directory) error = %v", err)
	}
	if err := ValidateImagePath(""); err == nil {
		t.Error("ValidateImagePath(\"\") expected error, got nil")
	}
	if err := ValidateImagePath(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("ValidateImagePath(missing) expected error, got nil")
	}
}

func TestScanDirectoryForImages(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, dir, "a.png", 2, 2, color.RGBA{A: 255})
	writeTestPNG(t, dir, "b.png", 2, 2, color.RGBA{A: 255})
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatalf("failed to create subdir: %v", err)
	}

	files, err := ScanDirectoryForImages(dir)
	if err != nil {
		t.Fatalf("ScanDirectoryForImages() error = %v", err)
	}
	if len(files) != 2 {
		t.Errorf("ScanDirectoryForImages() found %d files, want 2", len(files))
	}
}

func TestScanDirectoryForImagesEmpty(t *testing.T) {
	if _, err := ScanDirectoryForImages(t.TempDir()); err == nil {
		t.Error("ScanDirectoryForImages(empty dir) expected error, got nil")
	}
}

func TestResolveImagePath(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "only.png", 2, 2, color.RGBA{B: 200, A: 255})

	// A file resolves to itself.
	resolved, err := ResolveImagePath(path)
	if err != nil {
		t.Fatalf("ResolveImagePath(file) error = %v", err)
	}
	if resolved != path {
		t.Errorf("ResolveImagePath(file) = %q, want %q", resolved, path)
	}

	// A directory with one image resolves to that image.
	resolved, err = ResolveImagePath(dir)
	if err != nil {
		t.Fatalf("ResolveImagePath(dir) error = %v", err)
	}
	if resolved != path {
		t.Errorf("ResolveImagePath(dir) = %q, want %q", resolved, path)
	}
}

func TestSelectRandomImage(t *testing.T) {
	paths := []string{"a.png", "b.png", "c.png"}
	selected, err := SelectRandomImage(paths)
	if err != nil {
		t.Fatalf("SelectRandomImage() error = %v", err)
	}
	found := false
	for _, p := range paths {
		if p == selected {
			found = true
		}
	}
	if !found {
		t.Errorf("SelectRandomImage() = %q, not in input list", selected)
	}

	if _, err := SelectRandomImage(nil); err == nil {
		t.Error("SelectRandomImage(nil) expected error, got nil")
	}
}

func TestGetImageDimensions(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "dim.png", 7, 5, color.RGBA{A: 255})

	w, h, err := GetImageDimensions(path)
	if err != nil {
		t.Fatalf("GetImageDimensions() error = %v", err)
	}
	if w != 7 || h != 5 {
		t.Errorf("GetImageDimensions() = %dx%d, want 7x5", w, h)
	}
}

func TestToBuffer(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}

	buf, err := ToBuffer(img)
	if err != nil {
		t.Fatalf("ToBuffer() error = %v", err)
	}
	if buf.Width != 3 || buf.Height != 2 {
		t.Fatalf("ToBuffer() dimensions = %dx%d, want 3x2", buf.Width, buf.Height)
	}
	if len(buf.Data) != 3*2*4 {
		t.Fatalf("ToBuffer() buffer length = %d, want %d", len(buf.Data), 3*2*4)
	}
	if buf.Data[0] != 10 || buf.Data[1] != 20 || buf.Data[2] != 30 || buf.Data[3] != 255 {
		t.Errorf("ToBuffer() first pixel = %v, want [10 20 30 255]", buf.Data[:4])
	}
}

func TestToBufferNonZeroOrigin(t *testing.T) {
	// Sub-images often have bounds that do not start at (0, 0).
	img := image.NewRGBA(image.Rect(5, 5, 8, 7))
	img.SetRGBA(5, 5, color.RGBA{R: 99, A: 255})

	buf, err := ToBuffer(img)
	if err != nil {
		t.Fatalf("ToBuffer() error = %v", err)
	}
	if buf.Width != 3 || buf.Height != 2 {
		t.Fatalf("ToBuffer() dimensions = %dx%d, want 3x2", buf.Width, buf.Height)
	}
	if buf.Data[0] != 99 {
		t.Errorf("ToBuffer() first pixel R = %d, want 99", buf.Data[0])
	}
}

func TestSupportedImageExtensions(t *testing.T) {
	exts := SupportedImageExtensions()
	if len(exts) == 0 {
		t.Fatal("SupportedImageExtensions() returned no extensions")
	}
	for _, ext := range exts {
		if !isImageFile("photo" + ext) {
			t.Errorf("isImageFile(photo%s) = false, want true", ext)
		}
	}
	if isImageFile("notes.txt") {
		t.Error("isImageFile(notes.txt) = true, want false")
	}
}
