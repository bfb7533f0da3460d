package model

// Record holds the complete set of field values for one form session. Every
// key exists at all times; absent input is the zero value of its kind.
type Record struct {
	FullName       string    `json:"fullName" yaml:"fullName"`
	Email          string    `json:"email" yaml:"email"`
	Password       string    `json:"password" yaml:"password"`
	ShowPassword   bool      `json:"showPassword" yaml:"showPassword"`
	Search         string    `json:"search" yaml:"search"`
	Age            string    `json:"age" yaml:"age"`
	PhoneNumber    string    `json:"phoneNumber" yaml:"phoneNumber"`
	BirthDate      string    `json:"birthDate" yaml:"birthDate"`
	Department     string    `json:"department" yaml:"department"`
	BioDescription string    `json:"bioDescription" yaml:"bioDescription"`
	Country        string    `json:"country" yaml:"country"`
	State          string    `json:"state" yaml:"state"`
	Priority       string    `json:"priority" yaml:"priority"`
	ClientMatch    string    `json:"clientMatch" yaml:"clientMatch"`
	Gender         string    `json:"gender" yaml:"gender"`
	Interests      StringSet `json:"interests" yaml:"interests"`
	AboutCode      string    `json:"aboutCode" yaml:"aboutCode"`
	KeepDataFor    string    `json:"keepDataFor" yaml:"keepDataFor"`
	Rating         int       `json:"rating" yaml:"rating"`
	FieldStatus    string    `json:"fieldStatus" yaml:"fieldStatus"`
	Volume         int       `json:"volume" yaml:"volume"`
	AcceptTerms    bool      `json:"acceptTerms" yaml:"acceptTerms"`
}

// DefaultRecord returns the initial record: empty text, unchecked boxes, an
// empty interests set, rating 0 (unrated) and the slider at VolumeDefault.
func DefaultRecord() Record {
	return Record{
		Interests: NewStringSet(),
		Volume:    VolumeDefault,
	}
}

// Clone returns a deep copy that shares no mutable state with r.
func (r Record) Clone() Record {
	out := r
	out.Interests = r.Interests.Clone()
	return out
}

// Equal compares two records field by field; interests compare as sets.
func (r Record) Equal(other Record) bool {
	for _, name := range fieldOrder {
		acc := accessors[name]
		left, right := acc.get(&r), acc.get(&other)
		if set, ok := left.(StringSet); ok {
			if !set.Equal(right.(StringSet)) {
				return false
			}
			continue
		}
		if left != right {
			return false
		}
	}
	return true
}

// Get returns the value stored under name. The second result is false for
// unknown keys.
func (r *Record) Get(name FieldName) (any, bool) {
	acc, ok := accessors[name]
	if !ok {
		return nil, false
	}
	return acc.get(r), true
}

// Set stores an already coerced value under name. Callers go through Coerce
// first; Set reports false for unknown keys or mismatched value types.
func (r *Record) Set(name FieldName, value any) bool {
	acc, ok := accessors[name]
	if !ok {
		return false
	}
	return acc.set(r, value)
}

// Map flattens the record into a key/value mapping holding every key. Set
// values are returned as string slices.
func (r Record) Map() map[string]any {
	out := make(map[string]any, len(fieldOrder))
	for _, name := range fieldOrder {
		value := accessors[name].get(&r)
		if set, ok := value.(StringSet); ok {
			value = set.Items()
		}
		out[string(name)] = value
	}
	return out
}

// Text returns the value of a text or enum field, or "" for other kinds.
func (r Record) Text(name FieldName) string {
	value, _ := (&r).Get(name)
	text, _ := value.(string)
	return text
}

type accessor struct {
	get func(*Record) any
	set func(*Record, any) bool
}

func textAccessor(ptr func(*Record) *string) accessor {
	return accessor{
		get: func(r *Record) any { return *ptr(r) },
		set: func(r *Record, v any) bool {
			s, ok := v.(string)
			if ok {
				*ptr(r) = s
			}
			return ok
		},
	}
}

func boolAccessor(ptr func(*Record) *bool) accessor {
	return accessor{
		get: func(r *Record) any { return *ptr(r) },
		set: func(r *Record, v any) bool {
			b, ok := v.(bool)
			if ok {
				*ptr(r) = b
			}
			return ok
		},
	}
}

func intAccessor(ptr func(*Record) *int) accessor {
	return accessor{
		get: func(r *Record) any { return *ptr(r) },
		set: func(r *Record, v any) bool {
			n, ok := v.(int)
			if ok {
				*ptr(r) = n
			}
			return ok
		},
	}
}

func setAccessor(ptr func(*Record) *StringSet) accessor {
	return accessor{
		get: func(r *Record) any { return ptr(r).Clone() },
		set: func(r *Record, v any) bool {
			s, ok := v.(StringSet)
			if ok {
				*ptr(r) = s.Clone()
			}
			return ok
		},
	}
}

var accessors = map[FieldName]accessor{
	FullName:       textAccessor(func(r *Record) *string { return &r.FullName }),
	Email:          textAccessor(func(r *Record) *string { return &r.Email }),
	Password:       textAccessor(func(r *Record) *string { return &r.Password }),
	ShowPassword:   boolAccessor(func(r *Record) *bool { return &r.ShowPassword }),
	Search:         textAccessor(func(r *Record) *string { return &r.Search }),
	Age:            textAccessor(func(r *Record) *string { return &r.Age }),
	PhoneNumber:    textAccessor(func(r *Record) *string { return &r.PhoneNumber }),
	BirthDate:      textAccessor(func(r *Record) *string { return &r.BirthDate }),
	Department:     textAccessor(func(r *Record) *string { return &r.Department }),
	BioDescription: textAccessor(func(r *Record) *string { return &r.BioDescription }),
	Country:        textAccessor(func(r *Record) *string { return &r.Country }),
	State:          textAccessor(func(r *Record) *string { return &r.State }),
	Priority:       textAccessor(func(r *Record) *string { return &r.Priority }),
	ClientMatch:    textAccessor(func(r *Record) *string { return &r.ClientMatch }),
	Gender:         textAccessor(func(r *Record) *string { return &r.Gender }),
	Interests:      setAccessor(func(r *Record) *StringSet { return &r.Interests }),
	AboutCode:      textAccessor(func(r *Record) *string { return &r.AboutCode }),
	KeepDataFor:    textAccessor(func(r *Record) *string { return &r.KeepDataFor }),
	Rating:         intAccessor(func(r *Record) *int { return &r.Rating }),
	FieldStatus:    textAccessor(func(r *Record) *string { return &r.FieldStatus }),
	Volume:         intAccessor(func(r *Record) *int { return &r.Volume }),
	AcceptTerms:    boolAccessor(func(r *Record) *bool { return &r.AcceptTerms }),
}
