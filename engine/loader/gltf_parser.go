package loader

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// Parse errors.
var (
	errInvalidGLTFVersion = errors.New("invalid glTF version: must be 2.x")
	errInvalidGLBMagic    = errors.New("invalid GLB magic number")
	errInvalidGLBVersion  = errors.New("invalid GLB version: must be 2")
	errMissingJSONChunk   = errors.New("GLB file missing JSON chunk")
	errInvalidDataURI     = errors.New("invalid data URI")
	errBufferSizeMismatch = errors.New("buffer shorter than declared byteLength")
	errAccessorOutOfRange = errors.New("accessor reads past the end of its buffer")
	errTruncatedGLBChunk  = errors.New("GLB chunk longer than the remaining file")
)

// gltfParserImpl is the implementation of the gltfParser interface.
type gltfParserImpl struct {
	baseDir  string
	document *gltfDocument
	binChunk []byte
}

// gltfParser loads a glTF/GLB document with its buffers and decodes accessor data.
type gltfParser interface {
	// Parse reads and parses the file at path. GLB is detected by its magic number.
	//
	// Parameters:
	//   - path: path to a .gltf or .glb file
	//
	// Returns:
	//   - error: error if reading or parsing fails
	Parse(path string) error

	// ParseReader parses a document from r. External buffer URIs resolve against baseDir.
	//
	// Parameters:
	//   - r: reader with glTF JSON or GLB bytes
	//   - baseDir: directory for relative URIs (may be empty)
	//
	// Returns:
	//   - error: error if parsing fails
	ParseReader(r io.Reader, baseDir string) error

	// Document returns the parsed document, or nil before a successful parse.
	Document() *gltfDocument

	// BaseDir returns the directory relative URIs resolve against.
	BaseDir() string

	// ReadFloats decodes an accessor into a flat float slice. Integer components are
	// normalized to [0,1] or [-1,1] when the accessor is flagged normalized.
	//
	// Parameters:
	//   - accessorIndex: the accessor to read
	//
	// Returns:
	//   - []float32: count*components values
	//   - int: component count per element
	//   - error: error if the accessor is invalid
	ReadFloats(accessorIndex int) ([]float32, int, error)

	// ReadUints decodes an unsigned integer accessor (indices, joints) into a flat slice.
	//
	// Parameters:
	//   - accessorIndex: the accessor to read
	//
	// Returns:
	//   - []uint32: count*components values
	//   - int: component count per element
	//   - error: error if the accessor is invalid or not unsigned
	ReadUints(accessorIndex int) ([]uint32, int, error)

	// BufferView returns the raw bytes of a buffer view (embedded images).
	BufferView(index int) ([]byte, error)
}

var _ gltfParser = &gltfParserImpl{}

// newGLTFParser creates a new glTF parser.
func newGLTFParser() gltfParser {
	return &gltfParserImpl{}
}

func (p *gltfParserImpl) Document() *gltfDocument {
	return p.document
}

func (p *gltfParserImpl) BaseDir() string {
	return p.baseDir
}

func (p *gltfParserImpl) Parse(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	return p.parse(data, filepath.Dir(path))
}

func (p *gltfParserImpl) ParseReader(r io.Reader, baseDir string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read data: %w", err)
	}
	return p.parse(data, baseDir)
}

func (p *gltfParserImpl) parse(data []byte, baseDir string) error {
	p.baseDir = baseDir

	jsonData := data
	if len(data) >= 4 && binary.LittleEndian.Uint32(data) == glbMagic {
		var err error
		jsonData, p.binChunk, err = splitGLB(data)
		if err != nil {
			return err
		}
	}

	var doc gltfDocument
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return fmt.Errorf("failed to parse glTF JSON: %w", err)
	}
	if !strings.HasPrefix(doc.Asset.Version, "2.") {
		return errInvalidGLTFVersion
	}
	if err := p.loadBuffers(&doc); err != nil {
		return fmt.Errorf("failed to load buffers: %w", err)
	}

	p.document = &doc
	return nil
}

// splitGLB returns the JSON and BIN chunks of a GLB container.
func splitGLB(data []byte) (jsonChunk, binChunk []byte, err error) {
	r := bytes.NewReader(data)

	var header glbHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, nil, fmt.Errorf("failed to read GLB header: %w", err)
	}
	if header.Magic != glbMagic {
		return nil, nil, errInvalidGLBMagic
	}
	if header.Version != glbVersion {
		return nil, nil, errInvalidGLBVersion
	}

	for {
		var ch glbChunkHeader
		if err := binary.Read(r, binary.LittleEndian, &ch); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, nil, fmt.Errorf("failed to read chunk header: %w", err)
		}
		if int64(ch.Length) > int64(r.Len()) {
			return nil, nil, fmt.Errorf("%w: chunk of %d bytes, %d left", errTruncatedGLBChunk, ch.Length, r.Len())
		}
		chunk := make([]byte, ch.Length)
		if _, err := io.ReadFull(r, chunk); err != nil {
			return nil, nil, fmt.Errorf("failed to read chunk data: %w", err)
		}
		switch ch.Type {
		case glbChunkJSON:
			jsonChunk = chunk
		case glbChunkBIN:
			if binChunk == nil {
				binChunk = chunk
			}
		}
	}

	if jsonChunk == nil {
		return nil, nil, errMissingJSONChunk
	}
	return jsonChunk, binChunk, nil
}

// loadBuffers resolves every buffer from the GLB BIN chunk, a data URI, or a sibling file.
func (p *gltfParserImpl) loadBuffers(doc *gltfDocument) error {
	for i := range doc.Buffers {
		buf := &doc.Buffers[i]

		switch {
		case buf.URI == "" && i == 0 && p.binChunk != nil:
			buf.data = p.binChunk
		case buf.URI == "":
			return fmt.Errorf("buffer %d has no URI and no GLB binary chunk", i)
		case strings.HasPrefix(buf.URI, "data:"):
			data, _, err := decodeDataURI(buf.URI)
			if err != nil {
				return fmt.Errorf("buffer %d: %w", i, err)
			}
			buf.data = data
		default:
			data, err := os.ReadFile(filepath.Join(p.baseDir, buf.URI))
			if err != nil {
				return fmt.Errorf("buffer %d: failed to load %q: %w", i, buf.URI, err)
			}
			buf.data = data
		}

		if len(buf.data) < buf.ByteLength {
			return fmt.Errorf("buffer %d: %w", i, errBufferSizeMismatch)
		}
	}
	return nil
}

// decodeDataURI decodes data:[<mediatype>][;base64],<data>.
func decodeDataURI(uri string) ([]byte, string, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, "", errInvalidDataURI
	}
	mediaType, encoding, _ := strings.Cut(header, ";")
	if encoding != "base64" {
		return nil, "", fmt.Errorf("%w: unsupported encoding %q", errInvalidDataURI, header)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode base64: %w", err)
	}
	return data, mediaType, nil
}

func (p *gltfParserImpl) BufferView(index int) ([]byte, error) {
	doc := p.document
	if doc == nil {
		return nil, errors.New("no document loaded")
	}
	if index < 0 || index >= len(doc.BufferViews) {
		return nil, fmt.Errorf("bufferView index %d out of range", index)
	}
	bv := &doc.BufferViews[index]
	if bv.Buffer < 0 || bv.Buffer >= len(doc.Buffers) {
		return nil, fmt.Errorf("buffer index %d out of range", bv.Buffer)
	}
	data := doc.Buffers[bv.Buffer].data
	if bv.ByteOffset < 0 || bv.ByteLength < 0 {
		return nil, fmt.Errorf("bufferView %d: negative offset or length", index)
	}
	end := bv.ByteOffset + bv.ByteLength
	if end > len(data) {
		return nil, errAccessorOutOfRange
	}
	return data[bv.ByteOffset:end], nil
}

// accessorElements walks the elements of an accessor, calling fn with each element's bytes.
func (p *gltfParserImpl) accessorElements(accessorIndex int, fn func(i int, elem []byte)) (*gltfAccessor, int, error) {
	doc := p.document
	if doc == nil {
		return nil, 0, errors.New("no document loaded")
	}
	if accessorIndex < 0 || accessorIndex >= len(doc.Accessors) {
		return nil, 0, fmt.Errorf("accessor index %d out of range", accessorIndex)
	}
	acc := &doc.Accessors[accessorIndex]
	if acc.Sparse != nil {
		return nil, 0, errors.New("sparse accessors are not supported")
	}
	if acc.BufferView == nil {
		return nil, 0, errors.New("accessor has no bufferView")
	}

	components, ok := gltfComponentCounts[acc.Type]
	if !ok {
		return nil, 0, fmt.Errorf("unknown accessor type %q", acc.Type)
	}
	size := componentSize(acc.ComponentType)
	if size == 0 {
		return nil, 0, fmt.Errorf("unknown component type %d", acc.ComponentType)
	}
	elemSize := size * components

	view, err := p.BufferView(*acc.BufferView)
	if err != nil {
		return nil, 0, err
	}
	stride := elemSize
	if bv := doc.BufferViews[*acc.BufferView]; bv.ByteStride != nil && *bv.ByteStride > 0 {
		stride = *bv.ByteStride
	}
	if acc.ByteOffset < 0 || acc.Count < 0 {
		return nil, 0, fmt.Errorf("accessor %d: negative offset or count", accessorIndex)
	}
	if acc.Count > 0 && acc.ByteOffset+(acc.Count-1)*stride+elemSize > len(view) {
		return nil, 0, errAccessorOutOfRange
	}

	for i := 0; i < acc.Count; i++ {
		off := acc.ByteOffset + i*stride
		fn(i, view[off:off+elemSize])
	}
	return acc, components, nil
}

func (p *gltfParserImpl) ReadFloats(accessorIndex int) ([]float32, int, error) {
	out := []float32{}
	_, components, err := p.accessorElements(accessorIndex, func(_ int, elem []byte) {
		out = appendFloats(out, elem, p.document.Accessors[accessorIndex])
	})
	if err != nil {
		return nil, 0, err
	}
	return out, components, nil
}

func (p *gltfParserImpl) ReadUints(accessorIndex int) ([]uint32, int, error) {
	if p.document != nil && accessorIndex >= 0 && accessorIndex < len(p.document.Accessors) {
		switch p.document.Accessors[accessorIndex].ComponentType {
		case gltfUnsignedByte, gltfUnsignedShort, gltfUnsignedInt:
		default:
			return nil, 0, fmt.Errorf("accessor %d is not unsigned integer", accessorIndex)
		}
	}

	var out []uint32
	_, components, err := p.accessorElements(accessorIndex, func(_ int, elem []byte) {
		acc := p.document.Accessors[accessorIndex]
		size := componentSize(acc.ComponentType)
		for off := 0; off < len(elem); off += size {
			out = append(out, readUint(elem[off:], acc.ComponentType))
		}
	})
	if err != nil {
		return nil, 0, err
	}
	return out, components, nil
}

// appendFloats decodes one element's components.
func appendFloats(out []float32, elem []byte, acc gltfAccessor) []float32 {
	size := componentSize(acc.ComponentType)
	for off := 0; off < len(elem); off += size {
		b := elem[off:]
		var v float32
		switch acc.ComponentType {
		case gltfFloat:
			v = math.Float32frombits(binary.LittleEndian.Uint32(b))
		case gltfUnsignedByte:
			v = float32(b[0])
			if acc.Normalized {
				v /= math.MaxUint8
			}
		case gltfUnsignedShort:
			v = float32(binary.LittleEndian.Uint16(b))
			if acc.Normalized {
				v /= math.MaxUint16
			}
		case gltfByte:
			v = float32(int8(b[0]))
			if acc.Normalized {
				v = max(v/math.MaxInt8, -1)
			}
		case gltfShort:
			v = float32(int16(binary.LittleEndian.Uint16(b)))
			if acc.Normalized {
				v = max(v/math.MaxInt16, -1)
			}
		case gltfUnsignedInt:
			v = float32(binary.LittleEndian.Uint32(b))
		}
		out = append(out, v)
	}
	return out
}

func readUint(b []byte, componentType int) uint32 {
	switch componentType {
	case gltfUnsignedByte:
		return uint32(b[0])
	case gltfUnsignedShort:
		return uint32(binary.LittleEndian.Uint16(b))
	default:
		return binary.LittleEndian.Uint32(b)
	}
}

func componentSize(componentType int) int {
	switch componentType {
	case gltfByte, gltfUnsignedByte:
		return 1
	case gltfShort, gltfUnsignedShort:
		return 2
	case gltfUnsignedInt, gltfFloat:
		return 4
	default:
		return 0
	}
}
