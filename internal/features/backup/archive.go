package backup

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
)

// Dump holds the documents of every archived collection.
type Dump map[string][]bson.Raw

// WriteArchive writes a zip holding manifest.json and one canonical Extended
// JSON array per collection.
func WriteArchive(w io.Writer, manifest *Manifest, dump Dump) error {
	zw := zip.NewWriter(w)

	manifest.Collections = make(map[string]int, len(dump))
	for _, name := range Collections {
		docs := dump[name]
		manifest.Collections[name] = len(docs)

		fw, err := zw.Create(name + ".json")
		if err != nil {
			return err
		}
		if err := writeDocs(fw, docs); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}

	fw, err := zw.Create(manifestFile)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(fw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(manifest); err != nil {
		return err
	}
	return zw.Close()
}

func writeDocs(w io.Writer, docs []bson.Raw) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	for i, doc := range docs {
		if i > 0 {
			if _, err := io.WriteString(w, ",\n"); err != nil {
				return err
			}
		}
		data, err := bson.MarshalExtJSON(doc, true, false)
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "]\n")
	return err
}

// ReadArchive parses an archive fully before anything is restored from it.
func ReadArchive(r io.ReaderAt, size int64) (*Manifest, Dump, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, nil, fmt.Errorf("open archive: %w", err)
	}

	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}

	mf, ok := files[manifestFile]
	if !ok {
		return nil, nil, fmt.Errorf("archive has no %s", manifestFile)
	}
	var manifest Manifest
	if err := readJSON(mf, &manifest); err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", manifestFile, err)
	}

	dump := make(Dump, len(Collections))
	for _, name := range Collections {
		f, ok := files[name+".json"]
		if !ok {
			continue
		}
		docs, err := readDocs(f)
		if err != nil {
			return nil, nil, fmt.Errorf("read %s: %w", name, err)
		}
		if want, ok := manifest.Collections[name]; ok && want != len(docs) {
			return nil, nil, fmt.Errorf("%s: manifest lists %d documents, archive holds %d", name, want, len(docs))
		}
		dump[name] = docs
	}
	return &manifest, dump, nil
}

func readJSON(f *zip.File, v interface{}) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	return json.NewDecoder(rc).Decode(v)
}

func readDocs(f *zip.File) ([]bson.Raw, error) {
	var items []json.RawMessage
	if err := readJSON(f, &items); err != nil {
		return nil, err
	}
	docs := make([]bson.Raw, 0, len(items))
	for i, item := range items {
		var doc bson.D
		if err := bson.UnmarshalExtJSON(item, true, &doc); err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		raw, err := bson.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		docs = append(docs, raw)
	}
	return docs, nil
}
