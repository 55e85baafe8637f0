// Copyright 2020 DataStax
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package primitive

import (
	"errors"
	"fmt"
	"io"
)

// ValueType identifies the three wire representations a bound [value] can take: a regular value with contents, an
// explicit null, or (protocol version 4 and higher) an unset value telling the server to skip this column.
type ValueType int32

const (
	ValueTypeRegular = ValueType(0)
	ValueTypeNull    = ValueType(-1)
	ValueTypeUnset   = ValueType(-2)
)

// Value is a bound value for a Query or Execute message, as designated by a '?' or named bind marker in a CQL
// statement.
type Value struct {
	Type     ValueType
	Contents []byte
}

func (v *Value) String() string {
	switch v.Type {
	case ValueTypeNull:
		return "NULL"
	case ValueTypeUnset:
		return "UNSET"
	default:
		return fmt.Sprintf("%v", v.Contents)
	}
}

// [value]

func ReadValue(source io.Reader) (*Value, error) {
	if length, err := ReadInt(source); err != nil {
		return nil, fmt.Errorf("cannot read [value] length: %w", err)
	} else if length == int32(ValueTypeNull) {
		return &Value{Type: ValueTypeNull}, nil
	} else if length == int32(ValueTypeUnset) {
		return &Value{Type: ValueTypeUnset}, nil
	} else if length < 0 {
		return nil, fmt.Errorf("invalid [value] length: %v", length)
	} else {
		decoded := make([]byte, length)
		if _, err := io.ReadFull(source, decoded); err != nil {
			return nil, fmt.Errorf("cannot read [value] content: %w", err)
		}
		return &Value{Type: ValueTypeRegular, Contents: decoded}, nil
	}
}

func WriteValue(value *Value, dest io.Writer) error {
	if value == nil {
		return errors.New("cannot write a nil [value]")
	}
	switch value.Type {
	case ValueTypeNull:
		return WriteInt(int32(ValueTypeNull), dest)
	case ValueTypeUnset:
		return WriteInt(int32(ValueTypeUnset), dest)
	case ValueTypeRegular:
		if value.Contents == nil {
			return WriteInt(int32(ValueTypeNull), dest)
		}
		length := len(value.Contents)
		if err := WriteInt(int32(length), dest); err != nil {
			return fmt.Errorf("cannot write [value] length: %w", err)
		} else if n, err := dest.Write(value.Contents); err != nil {
			return fmt.Errorf("cannot write [value] content: %w", err)
		} else if n < length {
			return errors.New("not enough capacity to write [value] content")
		}
		return nil
	default:
		return fmt.Errorf("unknown [value] type: %v", value.Type)
	}
}

func LengthOfValue(value *Value) (int, error) {
	if value == nil {
		return -1, errors.New("cannot compute length of a nil [value]")
	}
	switch value.Type {
	case ValueTypeNull, ValueTypeUnset:
		return LengthOfInt, nil
	case ValueTypeRegular:
		return LengthOfInt + len(value.Contents), nil
	default:
		return -1, fmt.Errorf("unknown [value] type: %v", value.Type)
	}
}

// positional [value]s

func ReadPositionalValues(source io.Reader, _ ProtocolVersion) ([]*Value, error) {
	if length, err := ReadShort(source); err != nil {
		return nil, fmt.Errorf("cannot read positional [value]s length: %w", err)
	} else {
		decoded := make([]*Value, length)
		for i := uint16(0); i < length; i++ {
			if value, err := ReadValue(source); err != nil {
				return nil, fmt.Errorf("cannot read positional [value]s element %d content: %w", i, err)
			} else {
				decoded[i] = value
			}
		}
		return decoded, nil
	}
}

func WritePositionalValues(values []*Value, dest io.Writer, _ ProtocolVersion) error {
	length := len(values)
	if err := WriteShort(uint16(length), dest); err != nil {
		return fmt.Errorf("cannot write positional [value]s length: %w", err)
	}
	for i, value := range values {
		if err := WriteValue(value, dest); err != nil {
			return fmt.Errorf("cannot write positional [value]s element %d content: %w", i, err)
		}
	}
	return nil
}

func LengthOfPositionalValues(values []*Value) (length int, err error) {
	length += LengthOfShort
	for i, value := range values {
		var valueLength int
		valueLength, err = LengthOfValue(value)
		if err != nil {
			return -1, fmt.Errorf("cannot compute length of positional [value] %d: %w", i, err)
		}
		length += valueLength
	}
	return length, nil
}

// named [value]s

func ReadNamedValues(source io.Reader, _ ProtocolVersion) (map[string]*Value, error) {
	if length, err := ReadShort(source); err != nil {
		return nil, fmt.Errorf("cannot read named [value]s length: %w", err)
	} else {
		decoded := make(map[string]*Value, length)
		for i := uint16(0); i < length; i++ {
			if name, err := ReadString(source); err != nil {
				return nil, fmt.Errorf("cannot read named [value]s entry %d name: %w", i, err)
			} else if value, err := ReadValue(source); err != nil {
				return nil, fmt.Errorf("cannot read named [value]s entry %d content: %w", i, err)
			} else {
				decoded[name] = value
			}
		}
		return decoded, nil
	}
}

func WriteNamedValues(values map[string]*Value, dest io.Writer, _ ProtocolVersion) error {
	length := len(values)
	if err := WriteShort(uint16(length), dest); err != nil {
		return fmt.Errorf("cannot write named [value]s length: %w", err)
	}
	for name, value := range values {
		if err := WriteString(name, dest); err != nil {
			return fmt.Errorf("cannot write named [value]s entry '%v' name: %w", name, err)
		}
		if err := WriteValue(value, dest); err != nil {
			return fmt.Errorf("cannot write named [value]s entry '%v' content: %w", name, err)
		}
	}
	return nil
}

func LengthOfNamedValues(values map[string]*Value) (length int, err error) {
	length += LengthOfShort
	for name, value := range values {
		nameLength := LengthOfString(name)
		var valueLength int
		valueLength, err = LengthOfValue(value)
		if err != nil {
			return -1, fmt.Errorf("cannot compute length of named [value]s: %w", err)
		}
		length += nameLength
		length += valueLength
	}
	return length, nil
}
