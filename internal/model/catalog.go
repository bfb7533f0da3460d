package model

const (
	FullName       FieldName = "fullName"
	Email          FieldName = "email"
	Password       FieldName = "password"
	ShowPassword   FieldName = "showPassword"
	Search         FieldName = "search"
	Age            FieldName = "age"
	PhoneNumber    FieldName = "phoneNumber"
	BirthDate      FieldName = "birthDate"
	Department     FieldName = "department"
	BioDescription FieldName = "bioDescription"
	Country        FieldName = "country"
	State          FieldName = "state"
	Priority       FieldName = "priority"
	ClientMatch    FieldName = "clientMatch"
	Gender         FieldName = "gender"
	Interests      FieldName = "interests"
	AboutCode      FieldName = "aboutCode"
	KeepDataFor    FieldName = "keepDataFor"
	Rating         FieldName = "rating"
	FieldStatus    FieldName = "fieldStatus"
	Volume         FieldName = "volume"
	AcceptTerms    FieldName = "acceptTerms"
)

const (
	// RatingMax is the number of stars offered by the rating control.
	RatingMax = 5
	// VolumeDefault is the slider position of a fresh record.
	VolumeDefault = 50
)

var fieldOrder = []FieldName{
	FullName, Email, Password, ShowPassword, Search,
	Age, PhoneNumber, BirthDate, Department, BioDescription,
	Country, State, Priority, ClientMatch,
	Gender, Interests,
	AboutCode, KeepDataFor,
	Rating, FieldStatus, Volume,
	AcceptTerms,
}

// FieldNames returns every record key in form order.
func FieldNames() []FieldName {
	out := make([]FieldName, len(fieldOrder))
	copy(out, fieldOrder)
	return out
}

// Lookup returns the catalog definition for name.
func Lookup(name FieldName) (Field, bool) {
	field, ok := catalogIndex[name]
	return field, ok
}

// Known reports whether name is one of the fixed record keys.
func Known(name FieldName) bool {
	_, ok := catalogIndex[name]
	return ok
}

// PracticeForm returns the form description shared by every renderer.
func PracticeForm() Form {
	fields := make([]Field, 0, len(fieldOrder))
	for _, name := range fieldOrder {
		fields = append(fields, cloneField(catalogIndex[name]))
	}
	sections := make([]Section, len(practiceSections))
	for i, section := range practiceSections {
		sections[i] = Section{
			Title:  section.Title,
			Help:   section.Help,
			Fields: append([]FieldName(nil), section.Fields...),
		}
	}
	return Form{
		ID:       "practice",
		Title:    "Modern Form Design Practice",
		Subtitle: "A contemporary form showcasing enhanced text input with validation and accessibility features.",
		Terms: "By submitting this form, you agree to our Terms of Service and Privacy Policy. " +
			"We will use your information solely for the purposes outlined in this form. " +
			"You may withdraw your consent at any time by contacting our support team.",
		Sections: sections,
		Fields:   fields,
	}
}

func cloneField(f Field) Field {
	out := f
	if len(f.Options) > 0 {
		out.Options = append([]Option(nil), f.Options...)
	}
	if f.Bounds != nil {
		bounds := *f.Bounds
		out.Bounds = &bounds
	}
	if len(f.Metadata) > 0 {
		out.Metadata = make(map[string]string, len(f.Metadata))
		for k, v := range f.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

func plainOptions(values ...string) []Option {
	out := make([]Option, 0, len(values))
	for _, value := range values {
		out = append(out, Option{Value: value, Label: value})
	}
	return out
}

var practiceSections = []Section{
	{Title: "Text Inputs", Fields: []FieldName{FullName, Email, Password, ShowPassword, Search}},
	{Title: "Numbers & Date Inputs", Fields: []FieldName{Age, PhoneNumber, BirthDate, Department}},
	{Title: "Advanced Inputs", Fields: []FieldName{Volume, BioDescription, AboutCode, KeepDataFor, FieldStatus}},
	{Title: "Selects & Dropdowns", Fields: []FieldName{Country, State, Priority, ClientMatch}},
	{Title: "Choice Inputs", Fields: []FieldName{Gender, Interests}},
	{Title: "Rate Your Experience", Fields: []FieldName{Rating}},
	{Title: "Terms & Conditions", Fields: []FieldName{AcceptTerms}},
}

var catalogIndex = func() map[FieldName]Field {
	fields := []Field{
		{Name: FullName, Kind: FieldKindText, Label: "Full Name", Placeholder: "Your name", Input: "text", Required: true},
		{Name: Email, Kind: FieldKindText, Label: "Email Address", Placeholder: "you@example.com", Input: "email", Required: true},
		{Name: Password, Kind: FieldKindText, Label: "Password", Placeholder: "••••••", Help: "Minimum 8 characters", Input: "password", Required: true},
		{Name: ShowPassword, Kind: FieldKindBoolean, Label: "Show password", Input: "checkbox"},
		{Name: Search, Kind: FieldKindText, Label: "Search (optional)", Placeholder: "Search anything...", Input: "search"},
		// Age and birth date are marked required in the markup but carry no rule.
		{Name: Age, Kind: FieldKindText, Label: "Age", Placeholder: "25", Input: "number"},
		{Name: PhoneNumber, Kind: FieldKindText, Label: "Phone Number (optional)", Placeholder: "+1 (555) 123-4567", Input: "tel"},
		{Name: BirthDate, Kind: FieldKindText, Label: "Birth Date", Input: "date"},
		{Name: Department, Kind: FieldKindText, Label: "Department (optional)", Placeholder: "Sales, HR, Engineering, etc.", Input: "text"},
		{Name: BioDescription, Kind: FieldKindText, Label: "Bio Description", Input: "textarea"},
		{Name: Country, Kind: FieldKindEnum, Label: "Country", Placeholder: "Select a country", Input: "select", Required: true, Options: []Option{
			{Value: "usa", Label: "United States"},
			{Value: "uk", Label: "United Kingdom"},
			{Value: "canada", Label: "Canada"},
			{Value: "australia", Label: "Australia"},
			{Value: "germany", Label: "Germany"},
		}},
		{Name: State, Kind: FieldKindEnum, Label: "State/Province (optional)", Placeholder: "Select state", Input: "select", Options: []Option{
			{Value: "ca", Label: "California"},
			{Value: "ny", Label: "New York"},
			{Value: "tx", Label: "Texas"},
			{Value: "fl", Label: "Florida"},
		}},
		{Name: Priority, Kind: FieldKindEnum, Label: "Priority (Set Dynamically)", Placeholder: "Choose priority", Help: "Sync to other server-side", Input: "select", Required: true, Options: []Option{
			{Value: "low", Label: "Low"},
			{Value: "medium", Label: "Medium"},
			{Value: "high", Label: "High"},
			{Value: "urgent", Label: "Urgent"},
		}},
		{Name: ClientMatch, Kind: FieldKindEnum, Label: "Client Match (Dropdown)", Placeholder: "Choose client", Input: "select", Options: []Option{
			{Value: "client1", Label: "Client A"},
			{Value: "client2", Label: "Client B"},
			{Value: "client3", Label: "Client C"},
		}},
		{Name: Gender, Kind: FieldKindEnum, Label: "Gender", Input: "radio", Required: true,
			Options: plainOptions("Male", "Female", "Non-binary", "Prefer not to say")},
		{Name: Interests, Kind: FieldKindSet, Label: "Interests (optional)", Help: "Select all that apply", Input: "checkbox-group",
			Options: plainOptions("Reading", "Sports", "Music", "Travel", "Cooking", "Gaming")},
		{Name: AboutCode, Kind: FieldKindText, Label: "About Code", Input: "textarea"},
		{Name: KeepDataFor, Kind: FieldKindText, Label: "Keep Data For", Input: "text"},
		{Name: Rating, Kind: FieldKindNumber, Label: "How would you rate your experience?", Input: "rating", Required: true,
			Bounds: &Bounds{Min: 0, Max: RatingMax}},
		{Name: FieldStatus, Kind: FieldKindText, Label: "Field Status", Input: "text"},
		{Name: Volume, Kind: FieldKindNumber, Label: "Volume Level", Help: "Adjust your preferred volume level", Input: "range",
			Bounds: &Bounds{Min: 0, Max: 100}},
		{Name: AcceptTerms, Kind: FieldKindBoolean, Label: "I accept the terms and conditions", Input: "checkbox", Required: true},
	}
	index := make(map[FieldName]Field, len(fields))
	for _, field := range fields {
		index[field.Name] = field
	}
	return index
}()
