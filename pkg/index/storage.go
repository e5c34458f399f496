package index

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"sort"
	"strings"

	"github.com/hack-pad/hackpadfs"
)

const (
	docsMagic  = "IXD1"
	freqsMagic = "IXF1"
)

// WriteFiles persists idx as the on-disk files named in the external
// interface: <prefix>.documents, .frequencies, .document_offsets,
// .frequency_offsets, .document_lengths, .ini.
func WriteFiles(fs hackpadfs.FS, prefix string, idx *Index) error {
	docs := append([]byte(docsMagic), idx.DocsBlob...)
	if err := hackpadfs.WriteFullFile(fs, prefix+".documents", docs, 0o644); err != nil {
		return fmt.Errorf("index: write documents: %w", err)
	}
	freqs := append([]byte(freqsMagic), idx.FreqsBlob...)
	if err := hackpadfs.WriteFullFile(fs, prefix+".frequencies", freqs, 0o644); err != nil {
		return fmt.Errorf("index: write frequencies: %w", err)
	}
	if err := hackpadfs.WriteFullFile(fs, prefix+".document_offsets", encodeU64s(idx.DocsOffsets), 0o644); err != nil {
		return fmt.Errorf("index: write document_offsets: %w", err)
	}
	if err := hackpadfs.WriteFullFile(fs, prefix+".frequency_offsets", encodeU64s(idx.FreqsOffsets), 0o644); err != nil {
		return fmt.Errorf("index: write frequency_offsets: %w", err)
	}
	if err := hackpadfs.WriteFullFile(fs, prefix+".document_lengths", encodeU32s(idx.DocLengths), 0o644); err != nil {
		return fmt.Errorf("index: write document_lengths: %w", err)
	}
	if err := hackpadfs.WriteFullFile(fs, prefix+".ini", encodeINI(idx.Metadata), 0o644); err != nil {
		return fmt.Errorf("index: write ini: %w", err)
	}
	return nil
}

// ReadFiles reconstructs an Index previously written by WriteFiles.
func ReadFiles(fs hackpadfs.FS, prefix string, numDocs uint32) (*Index, error) {
	docs, err := hackpadfs.ReadFile(fs, prefix+".documents")
	if err != nil {
		return nil, fmt.Errorf("index: read documents: %w", err)
	}
	if len(docs) < len(docsMagic) || string(docs[:len(docsMagic)]) != docsMagic {
		return nil, fmt.Errorf("index: %s: bad documents header", prefix)
	}
	freqs, err := hackpadfs.ReadFile(fs, prefix+".frequencies")
	if err != nil {
		return nil, fmt.Errorf("index: read frequencies: %w", err)
	}
	if len(freqs) < len(freqsMagic) || string(freqs[:len(freqsMagic)]) != freqsMagic {
		return nil, fmt.Errorf("index: %s: bad frequencies header", prefix)
	}
	docOffBytes, err := hackpadfs.ReadFile(fs, prefix+".document_offsets")
	if err != nil {
		return nil, fmt.Errorf("index: read document_offsets: %w", err)
	}
	freqOffBytes, err := hackpadfs.ReadFile(fs, prefix+".frequency_offsets")
	if err != nil {
		return nil, fmt.Errorf("index: read frequency_offsets: %w", err)
	}
	lenBytes, err := hackpadfs.ReadFile(fs, prefix+".document_lengths")
	if err != nil {
		return nil, fmt.Errorf("index: read document_lengths: %w", err)
	}
	iniBytes, err := hackpadfs.ReadFile(fs, prefix+".ini")
	if err != nil {
		return nil, fmt.Errorf("index: read ini: %w", err)
	}

	docLengths := decodeU32s(lenBytes)
	return &Index{
		NumDocs:      numDocs,
		DocsBlob:     docs[len(docsMagic):],
		FreqsBlob:    freqs[len(freqsMagic):],
		DocsOffsets:  decodeU64s(docOffBytes),
		FreqsOffsets: decodeU64s(freqOffBytes),
		DocLengths:   docLengths,
		AvgDocLength: avgDocLength(docLengths),
		Metadata:     decodeINI(iniBytes),
	}, nil
}

func encodeU64s(vs []uint64) []byte {
	buf := make([]byte, len(vs)*8)
	for i, v := range vs {
		binary.LittleEndian.PutUint64(buf[i*8:], v)
	}
	return buf
}

func decodeU64s(buf []byte) []uint64 {
	n := len(buf) / 8
	out := make([]uint64, n)
	for i := 0; i < n; i++ {
		out[i] = binary.LittleEndian.Uint64(buf[i*8:])
	}
	return out
}

func encodeU32s(vs []uint32) []byte {
	buf := make([]byte, len(vs)*4)
	for i, v := range vs {
		binary.LittleEndian.PutUint32(buf[i*4:], v)
	}
	return buf
}

func decodeU32s(buf []byte) []uint32 {
	n := len(buf) / 4
	out := make([]uint32, n)
	for i := 0; i < n; i++ {
		out[i] = binary.LittleEndian.Uint32(buf[i*4:])
	}
	return out
}

// encodeINI writes metadata as a flat "key = value" INI file, with
// sections inferred from each key's dotted prefix (documents, frequencies,
// stats, lexicon). No third-party INI library appears anywhere in the
// reference corpus, so this hand-rolled reader/writer stands in for one.
func encodeINI(meta map[string]string) []byte {
	bySection := map[string]map[string]string{}
	var sections []string
	for k, v := range meta {
		section, key := "general", k
		if i := strings.IndexByte(k, '.'); i >= 0 {
			section, key = k[:i], k[i+1:]
		}
		if _, ok := bySection[section]; !ok {
			bySection[section] = map[string]string{}
			sections = append(sections, section)
		}
		bySection[section][key] = v
	}
	sort.Strings(sections)

	var buf bytes.Buffer
	for _, section := range sections {
		fmt.Fprintf(&buf, "[%s]\n", section)
		keys := make([]string, 0, len(bySection[section]))
		for k := range bySection[section] {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&buf, "%s = %s\n", k, bySection[section][k])
		}
	}
	return buf.Bytes()
}

func decodeINI(buf []byte) map[string]string {
	meta := map[string]string{}
	section := "general"
	sc := bufio.NewScanner(bytes.NewReader(buf))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])
		if section != "general" {
			key = section + "." + key
		}
		meta[key] = val
	}
	return meta
}
