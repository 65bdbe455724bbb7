package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Encode writes records as an indented JSON array followed by a newline.
func Encode(w io.Writer, records []ExportRecord) error {
	if records == nil {
		records = []ExportRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	return nil
}

// Decode reads a JSON array of records.
func Decode(r io.Reader) ([]ExportRecord, error) {
	var records []ExportRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return records, nil
}

// Marshal returns the encoded form of records.
func Marshal(records []ExportRecord) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes data produced by Marshal.
func Unmarshal(data []byte) ([]ExportRecord, error) {
	return Decode(bytes.NewReader(data))
}

// SaveFile writes records to path, replacing any existing file.
func SaveFile(path string, records []ExportRecord) error {
	data, err := Marshal(records)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// LoadFile reads the records stored at path.
func LoadFile(path string) ([]ExportRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}
