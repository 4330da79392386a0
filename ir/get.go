package ir

// GetIn follows a sequence of object field names from y and returns the
// node found there, or nil if any step is absent or lands on a
// non-object. An empty path returns y itself.
func GetIn(y *Node, path ...string) *Node {
	res := y
	for _, field := range path {
		res = Get(res, field)
		if res == nil {
			return nil
		}
	}
	return res
}

// SetIn replaces the value at the given field path in place. It reports
// whether the full path existed; nothing is modified otherwise.
// Intermediate objects are not created.
func SetIn(y *Node, path []string, val *Node) bool {
	if len(path) == 0 {
		return false
	}
	parent := GetIn(y, path[:len(path)-1]...)
	if parent == nil || parent.Type != ObjectType {
		return false
	}
	if Get(parent, path[len(path)-1]) == nil {
		return false
	}
	return Set(parent, path[len(path)-1], val)
}
