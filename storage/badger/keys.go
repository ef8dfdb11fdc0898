package badger

import "encoding/binary"

// Key prefixes for different data types
const (
	chunkRecordPrefix   = "chkrec"
	meetingRecordPrefix = "meetrec"
	vectorRecordPrefix  = "vecrec"
	vectorUserPrefix    = "vecusr"
)

// makeChunkKey generates a composite key for a transcript chunk.
// Format: prefix:meetingID:chunkIndex, with the index written in BigEndian
// so lexicographic iteration yields chunks in transcript order.
func makeChunkKey(meetingID string, chunkIndex int) []byte {
	prefix := chunkRecordPrefix + ":" + meetingID + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(chunkIndex))
	return buf
}

// decodeChunkIndex extracts the chunk index from the trailing 8 BigEndian
// bytes of a chunk key.
func decodeChunkIndex(key []byte) int {
	if len(key) < 8 {
		return 0
	}
	return int(binary.BigEndian.Uint64(key[len(key)-8:]))
}

// makeChunkScanPrefix generates the iteration prefix for a meeting's chunks.
func makeChunkScanPrefix(meetingID string) []byte {
	return []byte(chunkRecordPrefix + ":" + meetingID + ":")
}

// makeMeetingKey generates a key for a meeting by id.
func makeMeetingKey(meetingID string) []byte {
	return []byte(meetingRecordPrefix + ":" + meetingID)
}

// makeMeetingScanPrefix generates the iteration prefix for all meetings.
func makeMeetingScanPrefix() []byte {
	return []byte(meetingRecordPrefix + ":")
}

// makeVectorKey generates a key for a vector entry by its vector id.
func makeVectorKey(vectorID string) []byte {
	return []byte(vectorRecordPrefix + ":" + vectorID)
}

// makeVectorUserKey generates a tenant index key for a vector entry.
// Format: prefix:userID:vectorID. Scanning the user prefix yields exactly
// the ids belonging to one user, which keeps similarity queries inside the
// tenant boundary by construction.
func makeVectorUserKey(userID, vectorID string) []byte {
	return []byte(vectorUserPrefix + ":" + userID + ":" + vectorID)
}

// makeVectorUserScanPrefix generates the iteration prefix for one user's
// vector entries.
func makeVectorUserScanPrefix(userID string) []byte {
	return []byte(vectorUserPrefix + ":" + userID + ":")
}
