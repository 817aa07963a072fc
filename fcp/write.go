package fcp

import (
	"encoding/xml"
	"fmt"
	"os"
)

// Version is the FCPXML version written by Marshal.
const Version = "1.13"

// Marshal renders the document with the XML header and FCPXML doctype.
func Marshal(doc *FCPXML) ([]byte, error) {
	if doc.Version == "" {
		doc.Version = Version
	}
	body, err := xml.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal FCPXML: %v", err)
	}
	out := []byte(xml.Header + "<!DOCTYPE fcpxml>\n\n")
	out = append(out, body...)
	return out, nil
}

// WriteToFile marshals the document and writes it to path.
func WriteToFile(doc *FCPXML, path string) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write FCPXML file: %v", err)
	}
	return nil
}
