package fcp

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
)

// GenerateUID derives a media UID from the file's base name.
//
// Final Cut binds a UID to a file on first import; handing it a different UID
// for the same file later fails the import, so the UID must not depend on the
// directory the export ran from.
func GenerateUID(filePath string) string {
	filename := filepath.Base(filePath)
	sum := md5.Sum([]byte("cutlist_media_" + filename))
	hexStr := strings.ToUpper(hex.EncodeToString(sum[:]))
	return fmt.Sprintf("%s-%s-%s-%s-%s",
		hexStr[0:8], hexStr[8:12], hexStr[12:16], hexStr[16:20], hexStr[20:32])
}

// GenerateResourceID creates a standardized resource ID
func GenerateResourceID(index int) string {
	return fmt.Sprintf("r%d", index)
}

// IDGenerator hands out resource IDs and remembers one UID per file.
type IDGenerator struct {
	usedIDs   map[string]bool
	nextIndex int
	fileUIDs  map[string]string
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{
		usedIDs:   make(map[string]bool),
		fileUIDs:  make(map[string]string),
		nextIndex: 1,
	}
}

// ReserveID returns the next unused resource ID.
func (g *IDGenerator) ReserveID() string {
	for {
		id := GenerateResourceID(g.nextIndex)
		g.nextIndex++
		if !g.usedIDs[id] {
			g.usedIDs[id] = true
			return id
		}
	}
}

// MarkUsed marks an ID as used (for existing resources)
func (g *IDGenerator) MarkUsed(id string) {
	g.usedIDs[id] = true
}

// UIDFor returns a stable UID for a file path.
func (g *IDGenerator) UIDFor(path string) string {
	if uid, ok := g.fileUIDs[path]; ok {
		return uid
	}
	uid := GenerateUID(path)
	g.fileUIDs[path] = uid
	return uid
}
