// Package vector implements the LPC interrupt-vector-table checksum.
//
// # Vector Table Checksum
//
// NXP LPC microcontrollers boot from a fixed-size interrupt vector table at
// flash address 0. The boot ROM refuses to start the application unless the
// first 8 table entries sum to zero under unsigned 32-bit arithmetic. One of
// the (otherwise reserved) entries is therefore set to the two's complement
// of the sum of the other 7:
//
//	table[slot] = 0 - (table[0] + ... + table[7], excluding table[slot])
//
// Which slot holds the checksum is a family convention:
//
//	Slot 7: LPC17xx, LPC43xx and most other LPC families (SlotLPC17xx)
//	Slot 5: LPC2000 family (SlotLPC2000)
//
// # Usage
//
// Compute and inject the checksum for a table read from a firmware image:
//
//	table, err := vector.TableFromBytes(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	table[vector.SlotLPC17xx] = vector.Checksum(table, vector.SlotLPC17xx)
//	copy(data, table.Bytes())
//
// After the assignment the full 8-word sum is 0 modulo 2^32, which is exactly
// what the boot ROM verifies.
package vector
