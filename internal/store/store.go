package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// ErrNotFound: koleksiyon dosyası mevcut değil.
var ErrNotFound = errors.New("veri dosyası bulunamadı")

var errInvalidEncoding = errors.New("geçersiz encoding")

// DecodeError: dosya desteklenen encoding'lerin hiçbiriyle çözülemedi.
type DecodeError struct {
	Path string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("JSON dosyası çözülemedi: %s", e.Path)
}

// Store, koleksiyon başına tek JSON dosyası tutan döküman deposudur.
// Her okuma/yazma dosyanın tamamı üzerinden yapılır; tek-yazar varsayımıyla
// kilitleme yapılmaz.
type Store struct {
	dataDir string
}

func New(dataDir string) *Store {
	return &Store{dataDir: dataDir}
}

func (s *Store) path(name string) string {
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	return filepath.Join(s.dataDir, name)
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func decodeUTF8(raw []byte) ([]byte, error) {
	// x/text'in UTF-8 decoder'ı geçersiz baytları U+FFFD ile değiştirir;
	// fallback sırasının çalışması için burada katı doğrulama gerekir
	if !utf8.Valid(raw) {
		return nil, errInvalidEncoding
	}
	return raw, nil
}

func decodeUTF8Sig(raw []byte) ([]byte, error) {
	return decodeUTF8(bytes.TrimPrefix(raw, utf8BOM))
}

func decodeUTF16(raw []byte) ([]byte, error) {
	return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder().Bytes(raw)
}

func decodeLatin1(raw []byte) ([]byte, error) {
	return charmap.ISO8859_1.NewDecoder().Bytes(raw)
}

// Dış araçlarla üretilmiş dosyalar farklı encoding'lerle gelebiliyor;
// sırasıyla denenir, JSON olarak parse edilen ilk sonuç kabul edilir.
var decodings = []func([]byte) ([]byte, error){
	decodeUTF8,
	decodeUTF8Sig,
	decodeUTF16,
	decodeLatin1,
}

// Load, koleksiyonu okuyup v içine çözer.
func (s *Store) Load(name string, v any) error {
	p := s.path(name)
	raw, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, p)
		}
		return err
	}

	for _, decode := range decodings {
		text, err := decode(raw)
		if err != nil {
			continue
		}
		if err := json.Unmarshal(text, v); err == nil {
			return nil
		}
	}

	return &DecodeError{Path: p}
}

// Save, koleksiyonu 2 boşluk girintiyle, Türkçe karakterleri escape etmeden yazar.
func (s *Store) Save(name string, v any) error {
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return fmt.Errorf("veri klasörü oluşturulamadı: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("koleksiyon serileştirilemedi: %w", err)
	}

	return os.WriteFile(s.path(name), buf.Bytes(), 0o644)
}

// GenerateID: "PREFIX-XXXXXXXX" — rastgele bir UUID'nin ilk 8 karakteri, büyük harf.
func GenerateID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(uuid.NewString()[:8]))
}
