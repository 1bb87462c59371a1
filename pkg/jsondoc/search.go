package jsondoc

// SearchKey collects every value whose enclosing map has the given key,
// anywhere in the document.
//
// Both maps and lists are traversed; list elements are walked but not
// key-matched. Discovery order follows the explicit stack (last in, first
// out) and is not a guarantee — treat the result as a multiset.
func SearchKey(doc any, key string) []any {
	var found []any

	stack := []any{doc}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch node := current.(type) {
		case map[string]any:
			for k, v := range node {
				if k == key {
					found = append(found, v)
				}

				stack = append(stack, v)
			}
		case []any:
			stack = append(stack, node...)
		}
	}

	return found
}
