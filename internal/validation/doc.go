// Package validation implements the ordered field-rule pipeline used by the
// catalog forms.
//
// A Rule is built for one form field as a chain of sanitizers (Trim, Escape,
// ToDate) and checks (Required, MaxLength, Alphanumeric, ISODate, ...). The
// chain runs top to bottom on the submitted value:
//
//   - sanitizers always run, so both the redisplay path and the success path
//     see cleaned data;
//   - the first failing check attaches its message and the remaining checks
//     of that rule are skipped;
//   - Optional stops the checks when the value is empty.
//
// Rules validates every rule in order and collects all failures; an empty
// error set means the submission can be persisted.
//
//	rules := validation.Rules{
//		validation.Field("first_name").Trim().Required("First name must be specified.").Escape(),
//		validation.Field("date_of_birth").Optional().ISODate("Invalid date of birth").ToDate(),
//	}
//	result := rules.Validate(form)
//	if !result.Valid() {
//		// re-render with result.Errors
//	}
package validation
