package diskdb

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/diskdb/diskdb-go/protocol"
)

// Typed operations. Each method encodes one command line, classifies the
// reply per its command family, and decodes the result. Absent values are
// reported as ok=false, never as errors.

// statusReply checks a status command's reply.
func statusReply(line string) error {
	if protocol.ClassifyLine(line) != protocol.ReplyStatus {
		return &protocol.ProtocolError{
			Message: "expected OK status",
			Data:    []byte(line),
		}
	}
	return nil
}

// intReply parses an integer reply.
func intReply(line string) (int64, error) {
	if protocol.ClassifyLine(line) != protocol.ReplyInteger {
		return 0, &protocol.ProtocolError{
			Message: "expected integer reply",
			Data:    []byte(line),
		}
	}
	n, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		// Integer-shaped but out of range
		return 0, &protocol.ProtocolError{
			Message: "integer reply out of range",
			Data:    []byte(line),
		}
	}
	return n, nil
}

// boolReply parses a 0/1 integer reply.
func boolReply(line string) (bool, error) {
	n, err := intReply(line)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

// callStatus issues a command expecting an OK status.
func (c *Client) callStatus(name string, args ...string) error {
	line, err := c.call(name, args...)
	if err != nil {
		return err
	}
	return statusReply(line)
}

// callInt issues a command expecting an integer reply.
func (c *Client) callInt(name string, args ...string) (int64, error) {
	line, err := c.call(name, args...)
	if err != nil {
		return 0, err
	}
	return intReply(line)
}

// callBulk issues a command expecting a bulk-or-nil reply.
func (c *Client) callBulk(name string, args ...string) (string, bool, error) {
	line, err := c.call(name, args...)
	if err != nil {
		return "", false, err
	}
	if protocol.IsNil(line) {
		return "", false, nil
	}
	return line, true, nil
}

// String operations

// Set sets key to hold the string value.
func (c *Client) Set(key, value string) error {
	return c.callStatus("SET", key, value)
}

// Get returns the value of key. ok is false when the key does not exist.
func (c *Client) Get(key string) (value string, ok bool, err error) {
	return c.callBulk("GET", key)
}

// Incr increments the integer value of key by 1 and returns the new value.
func (c *Client) Incr(key string) (int64, error) {
	return c.callInt("INCR", key)
}

// Decr decrements the integer value of key by 1 and returns the new value.
func (c *Client) Decr(key string) (int64, error) {
	return c.callInt("DECR", key)
}

// IncrBy increments the integer value of key by increment and returns the
// new value.
func (c *Client) IncrBy(key string, increment int64) (int64, error) {
	return c.callInt("INCRBY", key, protocol.FormatInt(increment))
}

// Append appends value to key and returns the string length after the
// append.
func (c *Client) Append(key, value string) (int64, error) {
	return c.callInt("APPEND", key, value)
}

// List operations

// LPush inserts values at the head of the list and returns the list length.
func (c *Client) LPush(key string, values ...string) (int64, error) {
	return c.callInt("LPUSH", append([]string{key}, values...)...)
}

// RPush inserts values at the tail of the list and returns the list length.
func (c *Client) RPush(key string, values ...string) (int64, error) {
	return c.callInt("RPUSH", append([]string{key}, values...)...)
}

// LPop removes and returns the first element of the list. ok is false when
// the list is empty or missing.
func (c *Client) LPop(key string) (value string, ok bool, err error) {
	return c.callBulk("LPOP", key)
}

// RPop removes and returns the last element of the list. ok is false when
// the list is empty or missing.
func (c *Client) RPop(key string) (value string, ok bool, err error) {
	return c.callBulk("RPOP", key)
}

// LRange returns the list elements between start and stop inclusive.
// Negative indices count from the tail. A missing key yields an empty
// slice.
func (c *Client) LRange(key string, start, stop int64) ([]string, error) {
	lines, err := c.callFrame("LRANGE", key, protocol.FormatInt(start), protocol.FormatInt(stop))
	if err != nil {
		return nil, err
	}
	return protocol.DecodeStrings(lines), nil
}

// LLen returns the length of the list.
func (c *Client) LLen(key string) (int64, error) {
	return c.callInt("LLEN", key)
}

// Set operations

// SAdd adds members to the set and returns the number of members added.
func (c *Client) SAdd(key string, members ...string) (int64, error) {
	return c.callInt("SADD", append([]string{key}, members...)...)
}

// SRem removes members from the set and returns the number removed.
func (c *Client) SRem(key string, members ...string) (int64, error) {
	return c.callInt("SREM", append([]string{key}, members...)...)
}

// SIsMember reports whether member is in the set.
func (c *Client) SIsMember(key, member string) (bool, error) {
	line, err := c.call("SISMEMBER", key, member)
	if err != nil {
		return false, err
	}
	return boolReply(line)
}

// SMembers returns all members of the set. Duplicate lines from a
// misbehaving server collapse silently.
func (c *Client) SMembers(key string) (map[string]struct{}, error) {
	lines, err := c.callFrame("SMEMBERS", key)
	if err != nil {
		return nil, err
	}
	return protocol.DecodeStringSet(lines), nil
}

// SCard returns the number of members in the set.
func (c *Client) SCard(key string) (int64, error) {
	return c.callInt("SCARD", key)
}

// Hash operations

// HSet sets field in the hash to value. Returns true when the field is new.
func (c *Client) HSet(key, field, value string) (bool, error) {
	line, err := c.call("HSET", key, field, value)
	if err != nil {
		return false, err
	}
	return boolReply(line)
}

// HGet returns the value of field in the hash. ok is false when the field
// does not exist.
func (c *Client) HGet(key, field string) (value string, ok bool, err error) {
	return c.callBulk("HGET", key, field)
}

// HDel deletes fields from the hash and returns the number removed.
func (c *Client) HDel(key string, fields ...string) (int64, error) {
	return c.callInt("HDEL", append([]string{key}, fields...)...)
}

// HGetAll returns all field/value pairs of the hash in reply order.
func (c *Client) HGetAll(key string) ([]protocol.Pair, error) {
	lines, err := c.callFrame("HGETALL", key)
	if err != nil {
		return nil, err
	}
	return protocol.DecodePairs(lines)
}

// HExists reports whether field exists in the hash.
func (c *Client) HExists(key, field string) (bool, error) {
	line, err := c.call("HEXISTS", key, field)
	if err != nil {
		return false, err
	}
	return boolReply(line)
}

// Sorted set operations

// ZAdd adds members with scores to the sorted set and returns the number of
// members added. Members are encoded in sorted order so repeated calls
// produce identical wire lines.
func (c *Client) ZAdd(key string, members map[string]float64) (int64, error) {
	names := make([]string, 0, len(members))
	for member := range members {
		names = append(names, member)
	}
	sort.Strings(names)

	args := make([]string, 0, 1+2*len(members))
	args = append(args, key)
	for _, member := range names {
		args = append(args, protocol.FormatScore(members[member]), member)
	}
	return c.callInt("ZADD", args...)
}

// ZRem removes members from the sorted set and returns the number removed.
func (c *Client) ZRem(key string, members ...string) (int64, error) {
	return c.callInt("ZREM", append([]string{key}, members...)...)
}

// ZScore returns the score of member. ok is false when the member does not
// exist.
func (c *Client) ZScore(key, member string) (score float64, ok bool, err error) {
	line, found, err := c.callBulk("ZSCORE", key, member)
	if err != nil || !found {
		return 0, found, err
	}
	score, err = protocol.ParseScore(line)
	if err != nil {
		return 0, false, err
	}
	return score, true, nil
}

// ZRange returns the members between rank start and stop inclusive, in
// score order. Negative ranks count from the highest score.
func (c *Client) ZRange(key string, start, stop int64) ([]string, error) {
	lines, err := c.callFrame("ZRANGE", key, protocol.FormatInt(start), protocol.FormatInt(stop))
	if err != nil {
		return nil, err
	}
	return protocol.DecodeStrings(lines), nil
}

// ZRangeWithScores returns the members between rank start and stop inclusive
// together with their scores.
func (c *Client) ZRangeWithScores(key string, start, stop int64) ([]protocol.ScoredMember, error) {
	lines, err := c.callFrame("ZRANGE", key, protocol.FormatInt(start), protocol.FormatInt(stop), "WITHSCORES")
	if err != nil {
		return nil, err
	}
	return protocol.DecodeScoredMembers(lines)
}

// ZCard returns the number of members in the sorted set.
func (c *Client) ZCard(key string) (int64, error) {
	return c.callInt("ZCARD", key)
}

// JSON operations

// JSONSet stores v as compact JSON at path in key. Use "$" for the root
// path.
func (c *Client) JSONSet(key, path string, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.callStatus("JSON.SET", key, path, string(payload))
}

// JSONGet reads the JSON value at path in key into dest. ok is false when
// the key or path does not exist, and dest is left untouched.
func (c *Client) JSONGet(key, path string, dest interface{}) (ok bool, err error) {
	line, found, err := c.callBulk("JSON.GET", key, path)
	if err != nil || !found {
		return false, err
	}
	if err := json.Unmarshal([]byte(line), dest); err != nil {
		return false, &protocol.ProtocolError{
			Message: "invalid JSON reply: " + err.Error(),
			Data:    []byte(line),
		}
	}
	return true, nil
}

// JSONDel deletes the JSON value at path in key and returns the number of
// paths deleted.
func (c *Client) JSONDel(key, path string) (int64, error) {
	return c.callInt("JSON.DEL", key, path)
}

// Stream operations

// AutoID requests a server-generated stream entry ID.
const AutoID = "*"

// XAdd appends an entry to the stream and returns its ID. Fields are
// encoded in sorted order so repeated calls produce identical wire lines.
func (c *Client) XAdd(key, id string, fields map[string]string) (string, error) {
	names := make([]string, 0, len(fields))
	for field := range fields {
		names = append(names, field)
	}
	sort.Strings(names)

	args := make([]string, 0, 2+2*len(fields))
	args = append(args, key, id)
	for _, field := range names {
		args = append(args, field, fields[field])
	}
	return c.call("XADD", args...)
}

// XLen returns the number of entries in the stream.
func (c *Client) XLen(key string) (int64, error) {
	return c.callInt("XLEN", key)
}

// XRange returns the stream entries with IDs between start and end
// inclusive. Use "-" for the minimum ID and "+" for the maximum.
func (c *Client) XRange(key, start, end string) ([]protocol.StreamEntry, error) {
	lines, err := c.callFrame("XRANGE", key, start, end)
	if err != nil {
		return nil, err
	}
	return protocol.DecodeStreamEntries(lines)
}

// XRangeN is XRange with a COUNT limit on the number of entries returned.
func (c *Client) XRangeN(key, start, end string, count int64) ([]protocol.StreamEntry, error) {
	lines, err := c.callFrame("XRANGE", key, start, end, "COUNT", protocol.FormatInt(count))
	if err != nil {
		return nil, err
	}
	return protocol.DecodeStreamEntries(lines)
}

// Keyspace operations

// Type returns the type of key: string, list, set, zset, hash, json,
// stream, or none.
func (c *Client) Type(key string) (string, error) {
	return c.call("TYPE", key)
}

// Exists returns how many of the given keys exist.
func (c *Client) Exists(keys ...string) (int64, error) {
	return c.callInt("EXISTS", keys...)
}

// Del deletes keys and returns the number deleted.
func (c *Client) Del(keys ...string) (int64, error) {
	return c.callInt("DEL", keys...)
}
