package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatRecordLine(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want string
	}{
		{
			name: "direct link",
			rec:  Record{Name: "Lec 1", URL: "https://files.host/l1.mp4", Type: "video"},
			want: "[video] Lec 1:https://files.host/l1.mp4",
		},
		{
			name: "stream link with pair",
			rec: Record{
				Name: "Live 2", URL: "https://host/m.mpd", Type: "video",
				ParentID: "p1", ChildID: "c1",
			},
			want: "[video] Live 2:https://host/m.mpd&parentId=p1&childId=c1",
		},
		{
			name: "notes attachment",
			rec:  Record{Name: "DPP 4", URL: "https://cdn.host/dpp4.pdf", Type: "notes"},
			want: "[notes] DPP 4:https://cdn.host/dpp4.pdf",
		},
		{
			name: "empty type gets no prefix",
			rec:  Record{Name: "raw", URL: "https://host/x"},
			want: "raw:https://host/x",
		},
		{
			name: "pair needs both ids",
			rec:  Record{Name: "half", URL: "https://host/m.mpd", Type: "video", ParentID: "p1"},
			want: "[video] half:https://host/m.mpd",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRecordLine(tt.rec); got != tt.want {
				t.Errorf("FormatRecordLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	records := []Record{
		{Name: "Lec 1", URL: "https://files.host/l1.mp4", Type: "video"},
		{Name: "DPP 1", URL: "https://cdn.host/dpp1.pdf", Type: "notes"},
	}
	if err := WriteManifest(records, path); err != nil {
		t.Fatalf("WriteManifest error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := "[video] Lec 1:https://files.host/l1.mp4\n" +
		"[notes] DPP 1:https://cdn.host/dpp1.pdf\n" +
		"\n━━━━━━━━━━━━━━━\nExtracted via GoExtract\n━━━━━━━━━━━━━━━\n"
	if string(data) != want {
		t.Errorf("manifest content:\n%q\nwant:\n%q", data, want)
	}
}

func TestWriteManifestOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := os.WriteFile(path, []byte("stale leftover content\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := WriteManifest(nil, path); err != nil {
		t.Fatalf("WriteManifest error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "stale") {
		t.Error("previous file content survived the overwrite")
	}
}

func TestWriteManifestBadPath(t *testing.T) {
	err := WriteManifest(nil, filepath.Join(t.TempDir(), "no", "such", "dir", "out.txt"))
	if err == nil {
		t.Fatal("expected error on unwritable path")
	}
}
