// Copyright 2026 The qris-dev Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package qris

import (
	"fmt"
	"strings"
)

const (
	crcPoly = 0x1021
	crcInit = 0xFFFF

	// ChecksumHeader is the tag and length of the trailing CRC field.
	ChecksumHeader = "6304"
	checksumLen    = 4
)

// CRC16 computes CRC-16/CCITT-FALSE: polynomial 0x1021, initial value
// 0xFFFF, MSB first, no reflection and no final XOR.
func CRC16(data []byte) uint16 {
	crc := uint16(crcInit)
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ crcPoly
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// Checksum returns the CRC of s as exactly four uppercase hex digits.
func Checksum(s string) string {
	return fmt.Sprintf("%04X", CRC16([]byte(s)))
}

// VerifyChecksum reports whether the last four characters of payload are the
// checksum of everything before them.
func VerifyChecksum(payload string) bool {
	if len(payload) < checksumLen {
		return false
	}
	body := payload[:len(payload)-checksumLen]
	return strings.EqualFold(Checksum(body), payload[len(payload)-checksumLen:])
}
