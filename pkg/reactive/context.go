package reactive

// SetValue stores a context value on this owner. Descendants see it through
// GetValue.
func (o *Owner) SetValue(key, value any) {
	o.valuesMu.Lock()
	defer o.valuesMu.Unlock()
	if o.values == nil {
		o.values = make(map[any]any)
	}
	o.values[key] = value
}

// GetValue returns the value for key from this owner or the nearest ancestor
// that has one.
func (o *Owner) GetValue(key any) any {
	for cur := o; cur != nil; cur = cur.parent {
		cur.valuesMu.RLock()
		v, ok := cur.values[key]
		cur.valuesMu.RUnlock()
		if ok {
			return v
		}
	}
	return nil
}
