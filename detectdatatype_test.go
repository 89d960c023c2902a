package roga

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"
)

const gdcsSample = "Strain,Matches,Pass/Fail\n2017-SEQ-0725,47,+\n"

func TestMaybeDecompressGzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(gdcsSample)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	r, dt, err := MaybeDecompress(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if dt != DataTypeGzip {
		t.Errorf("Expected %s, got %s", DataTypeGzip, dt)
	}

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != gdcsSample {
		t.Errorf("Decompressed content mismatch: %q", out)
	}
}

func TestMaybeDecompressZip(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("GDCS.csv")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(gdcsSample)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	expectDecompressed(t, &buf, DataTypeZip)
}

func TestMaybeDecompressXZ(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", "GDCS.csv.xz"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	expectDecompressed(t, f, DataTypeXZ)
}

func TestMaybeDecompressBZip2(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", "GDCS.csv.bz2"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	expectDecompressed(t, f, DataTypeBZip2)
}

func TestMaybeDecompressUnixCompress(t *testing.T) {
	_, dt, err := MaybeDecompress(bytes.NewReader([]byte{0x1f, 0x9d, 0x90, 0x53, 0x74, 0x72}))
	if err == nil {
		t.Error("Expected an error for .Z input")
	}
	if dt != DataTypeZ || dt.String() != "compress" {
		t.Errorf("Expected compress, got %s", dt)
	}
}

func expectDecompressed(t *testing.T, r io.Reader, expected DataType) {
	t.Helper()

	out, dt, err := MaybeDecompress(r)
	if err != nil {
		t.Fatal(err)
	}
	if dt != expected {
		t.Errorf("Expected %s, got %s", expected, dt)
	}

	content, err := io.ReadAll(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != gdcsSample {
		t.Errorf("Decompressed %s content mismatch: %q", expected, content)
	}
}

func TestMaybeDecompressPlain(t *testing.T) {
	r, dt, err := MaybeDecompress(bytes.NewReader([]byte(gdcsSample)))
	if err != nil {
		t.Fatal(err)
	}
	if dt != DataTypeNoCompression {
		t.Errorf("Expected %s, got %s", DataTypeNoCompression, dt)
	}

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != gdcsSample {
		t.Errorf("Passthrough content mismatch: %q", out)
	}
}

func TestMaybeDecompressEmpty(t *testing.T) {
	_, dt, err := MaybeDecompress(bytes.NewReader(nil))
	if err != nil {
		t.Fatal(err)
	}
	if dt != DataTypeNoCompression {
		t.Errorf("Expected %s, got %s", DataTypeNoCompression, dt)
	}
}

func TestSplitGoogleStoragePath(t *testing.T) {
	bucket, object, err := SplitGoogleStoragePath("gs://olc-reports/2017/reports/GDCS.csv")
	if err != nil {
		t.Fatal(err)
	}
	if bucket != "olc-reports" || object != "2017/reports/GDCS.csv" {
		t.Errorf("Unexpected split: %s %s", bucket, object)
	}

	if _, _, err := SplitGoogleStoragePath("gs://olc-reports"); err == nil {
		t.Error("Expected an error for a path without an object")
	}
}
