package rekordbox

import (
	"encoding/xml"
	"fmt"
	"math"
	"net/url"
	"strconv"

	"github.com/desertthunder/mixxport/internal/models"
)

// Document is the root DJ_PLAYLISTS element of a rekordbox XML file.
type Document struct {
	XMLName    xml.Name     `xml:"DJ_PLAYLISTS"`
	Version    string       `xml:"Version,attr"`
	Product    Product      `xml:"PRODUCT"`
	Collection Catalog      `xml:"COLLECTION"`
	Playlists  PlaylistTree `xml:"PLAYLISTS"`
}

// Product identifies the application the file claims to come from.
type Product struct {
	Name    string `xml:"Name,attr"`
	Version string `xml:"Version,attr"`
	Company string `xml:"Company,attr"`
}

// Catalog is the flat COLLECTION element listing every exported track once.
type Catalog struct {
	Entries int          `xml:"Entries,attr"`
	Tracks  []TrackEntry `xml:"TRACK"`
}

// TrackEntry is one COLLECTION/TRACK element. All values are pre-formatted
// strings so numeric rendering is fixed and locale-independent. Attributes
// for absent source fields are omitted entirely.
type TrackEntry struct {
	TrackID       string         `xml:"TrackID,attr"`
	Name          string         `xml:"Name,attr"`
	Artist        string         `xml:"Artist,attr"`
	Album         string         `xml:"Album,attr"`
	Grouping      string         `xml:"Grouping,attr,omitempty"`
	Genre         string         `xml:"Genre,attr,omitempty"`
	Year          string         `xml:"Year,attr,omitempty"`
	TrackNumber   string         `xml:"TrackNumber,attr,omitempty"`
	Comments      string         `xml:"Comments,attr,omitempty"`
	Location      string         `xml:"Location,attr"`
	Kind          string         `xml:"Kind,attr"`
	Size          string         `xml:"Size,attr"`
	TotalTime     string         `xml:"TotalTime,attr"`
	AverageBpm    string         `xml:"AverageBpm,attr"`
	BitRate       string         `xml:"BitRate,attr"`
	SampleRate    string         `xml:"SampleRate,attr"`
	PositionMarks []PositionMark `xml:"POSITION_MARK"`
}

// PositionMark is one memory cue under a catalog track.
type PositionMark struct {
	Name  string `xml:"Name,attr"`
	Type  string `xml:"Type,attr"`
	Start string `xml:"Start,attr"`
	Num   string `xml:"Num,attr"`
}

// PlaylistTree is the PLAYLISTS element holding the node hierarchy.
type PlaylistTree struct {
	Root Node `xml:"NODE"`
}

// Node is a playlist-tree node: the folder ROOT (Type 0) or one exported
// collection (Type 1) whose TRACK children reference catalog entries by Key.
type Node struct {
	Name    string     `xml:"Name,attr"`
	Type    string     `xml:"Type,attr"`
	KeyType string     `xml:"KeyType,attr,omitempty"`
	Count   string     `xml:"Count,attr,omitempty"`
	Entries string     `xml:"Entries,attr,omitempty"`
	Nodes   []Node     `xml:"NODE"`
	Tracks  []TrackKey `xml:"TRACK"`
}

// TrackKey references a catalog track from a playlist node.
type TrackKey struct {
	Key string `xml:"Key,attr"`
}

// BuildDocument assembles the destination document from the extracted
// library and the resolved export set.
//
// The catalog holds each referenced track exactly once, sorted by TrackID
// (the source library id, so identifiers are stable across runs). Collection
// nodes appear in export-set order and reference tracks in their resolved
// order. A reference to a track missing from the library is an internal
// error: extraction guarantees membership only names known tracks.
func BuildDocument(lib *models.Library, set *models.ExportSet) (*Document, error) {
	universe := set.TrackUniverse()

	catalog := Catalog{Entries: len(universe), Tracks: make([]TrackEntry, 0, len(universe))}
	for _, id := range universe {
		t, ok := lib.TrackByID(id)
		if !ok {
			return nil, fmt.Errorf("collection references unknown track %d", id)
		}
		catalog.Tracks = append(catalog.Tracks, trackEntry(t))
	}

	root := Node{
		Name:  "ROOT",
		Type:  "0",
		Count: strconv.Itoa(len(set.Collections)),
	}
	for _, c := range set.Collections {
		node := Node{
			Name:    c.Name,
			Type:    "1",
			KeyType: "0",
			Entries: strconv.Itoa(len(c.TrackIDs)),
			Tracks:  make([]TrackKey, 0, len(c.TrackIDs)),
		}
		for _, id := range c.TrackIDs {
			node.Tracks = append(node.Tracks, TrackKey{Key: strconv.FormatInt(int64(id), 10)})
		}
		root.Nodes = append(root.Nodes, node)
	}

	return &Document{
		Version:    "1.0.0",
		Product:    Product{Name: "rekordbox", Version: "6.8.6", Company: "AlphaTheta"},
		Collection: catalog,
		Playlists:  PlaylistTree{Root: root},
	}, nil
}

func trackEntry(t *models.Track) TrackEntry {
	entry := TrackEntry{
		TrackID:    strconv.FormatInt(int64(t.ID), 10),
		Name:       t.Title,
		Artist:     t.Artist,
		Album:      t.Album,
		Grouping:   t.Grouping.Or(""),
		Genre:      t.Genre.Or(""),
		Comments:   t.Comment.Or(""),
		Location:   locationURL(t.Location),
		Kind:       "MP3 File",
		Size:       strconv.FormatInt(t.FileSize, 10),
		TotalTime:  strconv.Itoa(int(math.Round(t.Duration))),
		AverageBpm: strconv.FormatFloat(t.BPM, 'f', 2, 64),
		BitRate:    strconv.Itoa(t.BitRate),
		SampleRate: strconv.Itoa(t.SampleRate),
	}

	if year, ok := t.Year.Get(); ok {
		entry.Year = strconv.Itoa(year)
	}
	if num, ok := t.TrackNumber.Get(); ok {
		entry.TrackNumber = strconv.Itoa(num)
	}

	for _, cue := range TranslateCues(t) {
		entry.PositionMarks = append(entry.PositionMarks, PositionMark{
			Name:  cue.Name,
			Type:  "0",
			Start: strconv.FormatFloat(cue.Seconds, 'f', 3, 64),
			Num:   "-1",
		})
	}

	return entry
}

// locationURL renders a track path as the file://localhost form rekordbox
// expects, percent-encoding the path segment.
func locationURL(path string) string {
	u := url.URL{Scheme: "file", Host: "localhost", Path: path}
	return u.String()
}
