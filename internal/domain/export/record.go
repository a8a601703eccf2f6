package export

// Record ist eine flache Abbildung von Feldnamen auf String-Werte.
// Ein nil-Wert steht für ein leeres Feld (im Export eine leere Zelle).
// Die Einfüge-Reihenfolge der Felder bleibt erhalten, damit die
// Header-Zeile aus dem ersten Record abgeleitet werden kann.
type Record struct {
	fields []string
	values map[string]*string
}

func NewRecord() *Record {
	return &Record{values: make(map[string]*string)}
}

// Set setzt ein Feld. Ein bereits vorhandenes Feld behält seine Position.
func (r *Record) Set(field string, value *string) {
	if _, exists := r.values[field]; !exists {
		r.fields = append(r.fields, field)
	}
	r.values[field] = value
}

// Get liefert den Wert eines Feldes; ok ist false wenn das Feld fehlt.
func (r *Record) Get(field string) (value *string, ok bool) {
	value, ok = r.values[field]
	return value, ok
}

// Fields liefert die Feldnamen in Einfüge-Reihenfolge.
func (r *Record) Fields() []string {
	return append([]string(nil), r.fields...)
}

func (r *Record) Len() int {
	return len(r.fields)
}

// String macht aus einem nullable Wert einen String
// (nil wird zur leeren Zeichenkette, nie zu "nil").
func String(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

// Ptr ist der Gegenpart zu String für Literale.
func Ptr(value string) *string {
	return &value
}
