package collection

// Migration upgrades the generic form of every record by one schema version.
type Migration func(records []map[string]any) ([]map[string]any, error)

// Identity is a migration for version bumps that only changed the envelope.
func Identity(records []map[string]any) ([]map[string]any, error) {
	return records, nil
}

// RenameFields moves values from old keys to new keys. Existing new keys win.
func RenameFields(renames map[string]string) Migration {
	return func(records []map[string]any) ([]map[string]any, error) {
		for _, rec := range records {
			if rec == nil {
				continue
			}
			for from, to := range renames {
				value, ok := rec[from]
				if !ok {
					continue
				}
				delete(rec, from)
				if _, exists := rec[to]; !exists {
					rec[to] = value
				}
			}
		}
		return records, nil
	}
}

// Chain runs migrations in order as a single step.
func Chain(steps ...Migration) Migration {
	return func(records []map[string]any) ([]map[string]any, error) {
		var err error
		for _, step := range steps {
			records, err = step(records)
			if err != nil {
				return nil, err
			}
		}
		return records, nil
	}
}
