package fleet

// MakeKey derives the stable identity of a node from its owning station,
// its kind tag and its in-station id, e.g. MakeKey("3", "esp32", "E9") ==
// "3:esp32:E9". Colliding triplets are a caller error.
func MakeKey(station, kind, id string) string {
	return station + ":" + kind + ":" + id
}
