package mediainfo

func optionalUint32(v *uint32) any {
	if v == nil {
		return nil
	}
	return uint64(*v)
}

func optionalUint64(v *uint64) any {
	if v == nil {
		return nil
	}
	return *v
}

func optionalInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func appendField(fields []Field, name string, value any) []Field {
	return append(fields, Field{Name: name, Value: value})
}
