// internal/checkout/session.go
package checkout

// Session tracks a form being filled in. Editing a field clears its error;
// Submit re-validates everything at once.
type Session struct {
	form   Form
	errors Errors
	opts   []Option
}

func NewSession(opts ...Option) *Session {
	return &Session{errors: Errors{}, opts: opts}
}

// Set stores value under the field's JSON name. It reports false for an
// unknown field.
func (s *Session) Set(field, value string) bool {
	p := s.form.field(field)
	if p == nil {
		return false
	}
	*p = value
	delete(s.errors, field)
	return true
}

func (s *Session) Form() Form {
	return s.form
}

func (s *Session) Errors() Errors {
	out := make(Errors, len(s.errors))
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

// Submit validates the whole form. The form is ready when the returned map is
// empty.
func (s *Session) Submit() Errors {
	s.errors = Validate(s.form, s.opts...)
	return s.Errors()
}
