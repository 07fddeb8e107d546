package cache

import (
	"cmp"
	"encoding/binary"
	"math"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// HashOrdered hashes any ordered key with xxhash. Keys that compare equal
// hash equally, including named types over the builtin kinds.
func HashOrdered[K cmp.Ordered](key K) uint64 {
	var buf [8]byte

	switch k := any(key).(type) {
	case string:
		return xxhash.Sum64String(k)
	case int:
		binary.LittleEndian.PutUint64(buf[:], uint64(k))
	case int8:
		binary.LittleEndian.PutUint64(buf[:], uint64(k))
	case int16:
		binary.LittleEndian.PutUint64(buf[:], uint64(k))
	case int32:
		binary.LittleEndian.PutUint64(buf[:], uint64(k))
	case int64:
		binary.LittleEndian.PutUint64(buf[:], uint64(k))
	case uint:
		binary.LittleEndian.PutUint64(buf[:], uint64(k))
	case uint8:
		binary.LittleEndian.PutUint64(buf[:], uint64(k))
	case uint16:
		binary.LittleEndian.PutUint64(buf[:], uint64(k))
	case uint32:
		binary.LittleEndian.PutUint64(buf[:], uint64(k))
	case uint64:
		binary.LittleEndian.PutUint64(buf[:], k)
	case uintptr:
		binary.LittleEndian.PutUint64(buf[:], uint64(k))
	case float32:
		binary.LittleEndian.PutUint64(buf[:], floatBits(float64(k)))
	case float64:
		binary.LittleEndian.PutUint64(buf[:], floatBits(k))
	default:
		return hashKind(reflect.ValueOf(key))
	}

	return xxhash.Sum64(buf[:])
}

// hashKind hashes a named ordered type the same way as its underlying kind
func hashKind(v reflect.Value) uint64 {
	var buf [8]byte

	switch v.Kind() {
	case reflect.String:
		return xxhash.Sum64String(v.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		binary.LittleEndian.PutUint64(buf[:], uint64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		binary.LittleEndian.PutUint64(buf[:], v.Uint())
	case reflect.Float32, reflect.Float64:
		binary.LittleEndian.PutUint64(buf[:], floatBits(v.Float()))
	}

	return xxhash.Sum64(buf[:])
}

// floatBits maps keys cmp.Compare treats as equal (-0 and +0, every NaN) to
// the same bits.
func floatBits(f float64) uint64 {
	switch {
	case f != f:
		return math.Float64bits(math.NaN())
	case f == 0:
		return 0
	}
	return math.Float64bits(f)
}
