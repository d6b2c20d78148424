package esign

// AssignedFieldIDs returns the ids of the fields assigned to the given
// signer, in input order. Removing a signer unassigns exactly these fields;
// the fields themselves always survive.
func AssignedFieldIDs(fields []FieldState, signerID string) []string {
	var ids []string
	for _, f := range fields {
		if f.AssignedTo == signerID {
			ids = append(ids, f.ID)
		}
	}

	return ids
}

// FieldsToReset returns the ids of the fields whose captured state must be
// discarded when a pending document returns to draft. Unsend requires that
// no signer has completed, so any completed field is a partial submission
// and is cleared so a later send starts from a clean slate.
func FieldsToReset(fields []FieldState) []string {
	var ids []string
	for _, f := range fields {
		if f.Completed {
			ids = append(ids, f.ID)
		}
	}

	return ids
}
