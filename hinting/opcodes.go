// Copyright 2012 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package hinting

import "fmt"

// Opcode is a TrueType instruction opcode.
//
// The opcodes are described at
// https://learn.microsoft.com/en-us/typography/opentype/spec/tt_instructions
type Opcode uint8

const (
	opSVTCA0       Opcode = 0x00 // Set freedom and projection Vectors To Coordinate Axis (y)
	opSVTCA1       Opcode = 0x01 // .. (x)
	opSPVTCA0      Opcode = 0x02 // Set Projection Vector To Coordinate Axis (y)
	opSPVTCA1      Opcode = 0x03 // .. (x)
	opSFVTCA0      Opcode = 0x04 // Set Freedom Vector to Coordinate Axis (y)
	opSFVTCA1      Opcode = 0x05 // .. (x)
	opSPVTL0       Opcode = 0x06 // Set Projection Vector To Line (parallel)
	opSPVTL1       Opcode = 0x07 // .. (perpendicular)
	opSFVTL0       Opcode = 0x08 // Set Freedom Vector To Line (parallel)
	opSFVTL1       Opcode = 0x09 // .. (perpendicular)
	opSPVFS        Opcode = 0x0A // Set Projection Vector From Stack
	opSFVFS        Opcode = 0x0B // Set Freedom Vector From Stack
	opGPV          Opcode = 0x0C // Get Projection Vector
	opGFV          Opcode = 0x0D // Get Freedom Vector
	opSFVTPV       Opcode = 0x0E // Set Freedom Vector To Projection Vector
	opISECT        Opcode = 0x0F // moves point p to the InterSECTion of two lines
	opSRP0         Opcode = 0x10 // Set Reference Point 0
	opSRP1         Opcode = 0x11 // Set Reference Point 1
	opSRP2         Opcode = 0x12 // Set Reference Point 2
	opSZP0         Opcode = 0x13 // Set Zone Pointer 0
	opSZP1         Opcode = 0x14 // Set Zone Pointer 1
	opSZP2         Opcode = 0x15 // Set Zone Pointer 2
	opSZPS         Opcode = 0x16 // Set Zone PointerS
	opSLOOP        Opcode = 0x17 // Set LOOP variable
	opRTG          Opcode = 0x18 // Round To Grid
	opRTHG         Opcode = 0x19 // Round To Half Grid
	opSMD          Opcode = 0x1A // Set Minimum Distance
	opELSE         Opcode = 0x1B // ELSE clause
	opJMPR         Opcode = 0x1C // JuMP Relative
	opSCVTCI       Opcode = 0x1D // Set Control Value Table Cut-In
	opSSWCI        Opcode = 0x1E // Set Single Width Cut-In
	opSSW          Opcode = 0x1F // Set Single Width
	opDUP          Opcode = 0x20 // DUPlicate top stack element
	opPOP          Opcode = 0x21 // POP top stack element
	opCLEAR        Opcode = 0x22 // CLEAR the stack
	opSWAP         Opcode = 0x23 // SWAP the top two elements on the stack
	opDEPTH        Opcode = 0x24 // DEPTH of the stack
	opCINDEX       Opcode = 0x25 // Copy the INDEXed element to the top of the stack
	opMINDEX       Opcode = 0x26 // Move the INDEXed element to the top of the stack
	opALIGNPTS     Opcode = 0x27 // ALIGN PoinTS
	opUTP          Opcode = 0x29 // UnTouch Point
	opLOOPCALL     Opcode = 0x2A // LOOP and CALL function
	opCALL         Opcode = 0x2B // CALL function
	opFDEF         Opcode = 0x2C // Function DEFinition
	opENDF         Opcode = 0x2D // END Function definition
	opMDAP0        Opcode = 0x2E // Move Direct Absolute Point (no rounding)
	opMDAP1        Opcode = 0x2F // .. (rounding)
	opIUP0         Opcode = 0x30 // Interpolate Untouched Points through the outline (y axis)
	opIUP1         Opcode = 0x31 // .. (x axis)
	opSHP0         Opcode = 0x32 // SHift Point using reference point 2
	opSHP1         Opcode = 0x33 // .. using reference point 1
	opSHC0         Opcode = 0x34 // SHift Contour using reference point 2
	opSHC1         Opcode = 0x35 // .. using reference point 1
	opSHZ0         Opcode = 0x36 // SHift Zone using reference point 2
	opSHZ1         Opcode = 0x37 // .. using reference point 1
	opSHPIX        Opcode = 0x38 // SHift point by a PIXel amount
	opIP           Opcode = 0x39 // Interpolate Point
	opMSIRP0       Opcode = 0x3A // Move Stack Indirect Relative Point (no rp0 change)
	opMSIRP1       Opcode = 0x3B // .. (set rp0 to point)
	opALIGNRP      Opcode = 0x3C // ALIGN to Reference Point
	opRTDG         Opcode = 0x3D // Round To Double Grid
	opMIAP0        Opcode = 0x3E // Move Indirect Absolute Point (no rounding)
	opMIAP1        Opcode = 0x3F // .. (rounding)
	opNPUSHB       Opcode = 0x40 // PUSH N Bytes
	opNPUSHW       Opcode = 0x41 // PUSH N Words
	opWS           Opcode = 0x42 // Write Store
	opRS           Opcode = 0x43 // Read Store
	opWCVTP        Opcode = 0x44 // Write Control Value Table in Pixel units
	opRCVT         Opcode = 0x45 // Read Control Value Table
	opGC0          Opcode = 0x46 // Get Coordinate projected onto the projection vector (current position)
	opGC1          Opcode = 0x47 // .. (original position)
	opSCFS         Opcode = 0x48 // Sets Coordinate From the Stack
	opMD0          Opcode = 0x49 // Measure Distance (current positions)
	opMD1          Opcode = 0x4A // .. (original positions)
	opMPPEM        Opcode = 0x4B // Measure Pixels Per EM
	opMPS          Opcode = 0x4C // Measure Point Size
	opFLIPON       Opcode = 0x4D // set the auto FLIP boolean to ON
	opFLIPOFF      Opcode = 0x4E // set the auto FLIP boolean to OFF
	opDEBUG        Opcode = 0x4F // DEBUG call
	opLT           Opcode = 0x50 // Less Than
	opLTEQ         Opcode = 0x51 // Less Than or EQual
	opGT           Opcode = 0x52 // Greater Than
	opGTEQ         Opcode = 0x53 // Greater Than or EQual
	opEQ           Opcode = 0x54 // EQual
	opNEQ          Opcode = 0x55 // Not EQual
	opODD          Opcode = 0x56 // ODD
	opEVEN         Opcode = 0x57 // EVEN
	opIF           Opcode = 0x58 // IF test
	opEIF          Opcode = 0x59 // End IF
	opAND          Opcode = 0x5A // logical AND
	opOR           Opcode = 0x5B // logical OR
	opNOT          Opcode = 0x5C // logical NOT
	opDELTAP1      Opcode = 0x5D // DELTA exception P1
	opSDB          Opcode = 0x5E // Set Delta Base
	opSDS          Opcode = 0x5F // Set Delta Shift
	opADD          Opcode = 0x60 // ADD
	opSUB          Opcode = 0x61 // SUBtract
	opDIV          Opcode = 0x62 // DIVide
	opMUL          Opcode = 0x63 // MULtiply
	opABS          Opcode = 0x64 // ABSolute value
	opNEG          Opcode = 0x65 // NEGate
	opFLOOR        Opcode = 0x66 // FLOOR
	opCEILING      Opcode = 0x67 // CEILING
	opROUND00      Opcode = 0x68 // ROUND value (direction and color variants)
	opROUND01      Opcode = 0x69
	opROUND10      Opcode = 0x6A
	opROUND11      Opcode = 0x6B
	opNROUND00     Opcode = 0x6C // No ROUNDing of value
	opNROUND01     Opcode = 0x6D
	opNROUND10     Opcode = 0x6E
	opNROUND11     Opcode = 0x6F
	opWCVTF        Opcode = 0x70 // Write Control Value Table in Funits
	opDELTAP2      Opcode = 0x71 // DELTA exception P2
	opDELTAP3      Opcode = 0x72 // DELTA exception P3
	opDELTAC1      Opcode = 0x73 // DELTA exception C1
	opDELTAC2      Opcode = 0x74 // DELTA exception C2
	opDELTAC3      Opcode = 0x75 // DELTA exception C3
	opSROUND       Opcode = 0x76 // Super ROUND
	opS45ROUND     Opcode = 0x77 // Super ROUND 45 degrees
	opJROT         Opcode = 0x78 // Jump Relative On True
	opJROF         Opcode = 0x79 // Jump Relative On False
	opROFF         Opcode = 0x7A // Round OFF
	opRUTG         Opcode = 0x7C // Round Up To Grid
	opRDTG         Opcode = 0x7D // Round Down To Grid
	opSANGW        Opcode = 0x7E // Set ANGle Weight (obsolete)
	opAA           Opcode = 0x7F // Adjust Angle (obsolete)
	opFLIPPT       Opcode = 0x80 // FLIP PoinT
	opFLIPRGON     Opcode = 0x81 // FLIP RanGe ON
	opFLIPRGOFF    Opcode = 0x82 // FLIP RanGe OFF
	opSCANCTRL     Opcode = 0x85 // SCAN conversion ConTRoL
	opSDPVTL0      Opcode = 0x86 // Set Dual Projection Vector To Line (parallel)
	opSDPVTL1      Opcode = 0x87 // .. (perpendicular)
	opGETINFO      Opcode = 0x88 // GET INFOrmation
	opIDEF         Opcode = 0x89 // Instruction DEFinition
	opROLL         Opcode = 0x8A // ROLL the top three stack elements
	opMAX          Opcode = 0x8B // MAXimum of top two stack elements
	opMIN          Opcode = 0x8C // MINimum of top two stack elements
	opSCANTYPE     Opcode = 0x8D // SCANTYPE
	opINSTCTRL     Opcode = 0x8E // INSTRuction execution ConTRoL
	opGETVARIATION Opcode = 0x91 // GET VARIATION normalized design coordinates
	opGETDATA      Opcode = 0x92 // GET DATA (reserved)
	opPUSHB000     Opcode = 0xB0 // PUSH Bytes
	opPUSHB001     Opcode = 0xB1
	opPUSHB010     Opcode = 0xB2
	opPUSHB011     Opcode = 0xB3
	opPUSHB100     Opcode = 0xB4
	opPUSHB101     Opcode = 0xB5
	opPUSHB110     Opcode = 0xB6
	opPUSHB111     Opcode = 0xB7
	opPUSHW000     Opcode = 0xB8 // PUSH Words
	opPUSHW001     Opcode = 0xB9
	opPUSHW010     Opcode = 0xBA
	opPUSHW011     Opcode = 0xBB
	opPUSHW100     Opcode = 0xBC
	opPUSHW101     Opcode = 0xBD
	opPUSHW110     Opcode = 0xBE
	opPUSHW111     Opcode = 0xBF
	opMDRP00000    Opcode = 0xC0 // Move Direct Relative Point (32 flag variants)
	opMIRP00000    Opcode = 0xE0 // Move Indirect Relative Point (32 flag variants)
)

var opcodeNames = map[Opcode]string{
	opSVTCA0: "SVTCA[0]", opSVTCA1: "SVTCA[1]",
	opSPVTCA0: "SPVTCA[0]", opSPVTCA1: "SPVTCA[1]",
	opSFVTCA0: "SFVTCA[0]", opSFVTCA1: "SFVTCA[1]",
	opSPVTL0: "SPVTL[0]", opSPVTL1: "SPVTL[1]",
	opSFVTL0: "SFVTL[0]", opSFVTL1: "SFVTL[1]",
	opSPVFS: "SPVFS", opSFVFS: "SFVFS", opGPV: "GPV", opGFV: "GFV",
	opSFVTPV: "SFVTPV", opISECT: "ISECT",
	opSRP0: "SRP0", opSRP1: "SRP1", opSRP2: "SRP2",
	opSZP0: "SZP0", opSZP1: "SZP1", opSZP2: "SZP2", opSZPS: "SZPS",
	opSLOOP: "SLOOP", opRTG: "RTG", opRTHG: "RTHG", opSMD: "SMD",
	opELSE: "ELSE", opJMPR: "JMPR", opSCVTCI: "SCVTCI", opSSWCI: "SSWCI",
	opSSW: "SSW", opDUP: "DUP", opPOP: "POP", opCLEAR: "CLEAR",
	opSWAP: "SWAP", opDEPTH: "DEPTH", opCINDEX: "CINDEX", opMINDEX: "MINDEX",
	opALIGNPTS: "ALIGNPTS", opUTP: "UTP", opLOOPCALL: "LOOPCALL",
	opCALL: "CALL", opFDEF: "FDEF", opENDF: "ENDF",
	opMDAP0: "MDAP[0]", opMDAP1: "MDAP[1]",
	opIUP0: "IUP[0]", opIUP1: "IUP[1]",
	opSHP0: "SHP[0]", opSHP1: "SHP[1]",
	opSHC0: "SHC[0]", opSHC1: "SHC[1]",
	opSHZ0: "SHZ[0]", opSHZ1: "SHZ[1]",
	opSHPIX: "SHPIX", opIP: "IP",
	opMSIRP0: "MSIRP[0]", opMSIRP1: "MSIRP[1]",
	opALIGNRP: "ALIGNRP", opRTDG: "RTDG",
	opMIAP0: "MIAP[0]", opMIAP1: "MIAP[1]",
	opNPUSHB: "NPUSHB", opNPUSHW: "NPUSHW",
	opWS: "WS", opRS: "RS", opWCVTP: "WCVTP", opRCVT: "RCVT",
	opGC0: "GC[0]", opGC1: "GC[1]", opSCFS: "SCFS",
	opMD0: "MD[0]", opMD1: "MD[1]",
	opMPPEM: "MPPEM", opMPS: "MPS",
	opFLIPON: "FLIPON", opFLIPOFF: "FLIPOFF", opDEBUG: "DEBUG",
	opLT: "LT", opLTEQ: "LTEQ", opGT: "GT", opGTEQ: "GTEQ",
	opEQ: "EQ", opNEQ: "NEQ", opODD: "ODD", opEVEN: "EVEN",
	opIF: "IF", opEIF: "EIF", opAND: "AND", opOR: "OR", opNOT: "NOT",
	opDELTAP1: "DELTAP1", opSDB: "SDB", opSDS: "SDS",
	opADD: "ADD", opSUB: "SUB", opDIV: "DIV", opMUL: "MUL",
	opABS: "ABS", opNEG: "NEG", opFLOOR: "FLOOR", opCEILING: "CEILING",
	opWCVTF: "WCVTF",
	opDELTAP2: "DELTAP2", opDELTAP3: "DELTAP3",
	opDELTAC1: "DELTAC1", opDELTAC2: "DELTAC2", opDELTAC3: "DELTAC3",
	opSROUND: "SROUND", opS45ROUND: "S45ROUND",
	opJROT: "JROT", opJROF: "JROF",
	opROFF: "ROFF", opRUTG: "RUTG", opRDTG: "RDTG",
	opSANGW: "SANGW", opAA: "AA",
	opFLIPPT: "FLIPPT", opFLIPRGON: "FLIPRGON", opFLIPRGOFF: "FLIPRGOFF",
	opSCANCTRL: "SCANCTRL",
	opSDPVTL0: "SDPVTL[0]", opSDPVTL1: "SDPVTL[1]",
	opGETINFO: "GETINFO", opIDEF: "IDEF", opROLL: "ROLL",
	opMAX: "MAX", opMIN: "MIN",
	opSCANTYPE: "SCANTYPE", opINSTCTRL: "INSTCTRL",
	opGETVARIATION: "GETVARIATION", opGETDATA: "GETDATA",
}

// String returns the assembly name of the opcode, with flag bits
// rendered in brackets for the variant families.
func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	switch {
	case op >= opROUND00 && op < opROUND00+4:
		return fmt.Sprintf("ROUND[%02b]", op-opROUND00)
	case op >= opNROUND00 && op < opNROUND00+4:
		return fmt.Sprintf("NROUND[%02b]", op-opNROUND00)
	case op >= opPUSHB000 && op <= opPUSHB111:
		return fmt.Sprintf("PUSHB[%03b]", op-opPUSHB000)
	case op >= opPUSHW000 && op <= opPUSHW111:
		return fmt.Sprintf("PUSHW[%03b]", op-opPUSHW000)
	case op >= opMDRP00000 && op < opMIRP00000:
		return fmt.Sprintf("MDRP[%05b]", op-opMDRP00000)
	case op >= opMIRP00000:
		return fmt.Sprintf("MIRP[%05b]", op-opMIRP00000)
	}
	return fmt.Sprintf("INS_%02X", uint8(op))
}
