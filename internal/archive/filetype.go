// Package archive reads the client's DAT files: the B-tree directory
// that maps resource ids to file offsets, the LZSS-style block
// compression those resources are stored under, and the weenie/cell
// template formats layered on top.
package archive

// FileType classifies a DAT entry by its resource id, mirroring the
// client's portal.dat/cell.dat id-range conventions.
type FileType int

const (
	FileTypeUnknown        FileType = 0x00
	FileTypeModel          FileType = 0x01
	FileTypeSetupModel     FileType = 0x02
	FileTypeAnimation      FileType = 0x03
	FileTypePalette        FileType = 0x04
	FileTypeSurfaceTexture FileType = 0x05
	FileTypeTexture        FileType = 0x06
	FileTypeSurface        FileType = 0x08
	FileTypeAnimationDone  FileType = 0x09
	FileTypeAudio          FileType = 0x0A
	FileTypeEnvCell        FileType = 0x0D
	FileTypeTable          FileType = 0x0E
	FileTypeClothing       FileType = 0x10
	FileTypeScene          FileType = 0x12
	FileTypeRegion         FileType = 0x13
	FileTypeLanguageString FileType = 0x31
	FileTypeFont           FileType = 0x40
	FileTypeLandblock      FileType = 0xFE
	FileTypeLandblockInfo  FileType = 0xFF
	FileTypeIndoorCell     FileType = 0xFD
)

// FileTypeFromID classifies a DAT resource id. Cell DAT suffixes (the
// low 16 bits) are checked before the portal DAT's top-byte prefix,
// since cell.dat ids reuse the same id space with a different scheme.
func FileTypeFromID(id uint32) FileType {
	suffix := id & 0xFFFF
	if suffix == 0xFFFF {
		return FileTypeLandblock
	}
	if suffix == 0xFFFE {
		return FileTypeLandblockInfo
	}

	prefix := byte(id >> 24)
	switch prefix {
	case 0x01:
		return FileTypeModel
	case 0x02:
		return FileTypeSetupModel
	case 0x03:
		return FileTypeAnimation
	case 0x04:
		return FileTypePalette
	case 0x05:
		return FileTypeSurfaceTexture
	case 0x06, 0x07:
		return FileTypeTexture
	case 0x08:
		return FileTypeSurface
	case 0x09:
		return FileTypeAnimationDone
	case 0x0A:
		return FileTypeAudio
	case 0x0D:
		return FileTypeEnvCell
	case 0x0E:
		return FileTypeTable
	case 0x10:
		return FileTypeClothing
	case 0x12:
		return FileTypeScene
	case 0x13:
		return FileTypeRegion
	case 0x31:
		return FileTypeLanguageString
	case 0x40:
		return FileTypeFont
	default:
		if suffix > 0 && suffix < 0xFFFE {
			return FileTypeIndoorCell
		}
		return FileTypeUnknown
	}
}

func (t FileType) String() string {
	switch t {
	case FileTypeModel:
		return "Model (OBJ)"
	case FileTypeSetupModel:
		return "SetupModel (SET)"
	case FileTypeAnimation:
		return "Animation (ANM)"
	case FileTypePalette:
		return "Palette (PAL)"
	case FileTypeSurfaceTexture:
		return "SurfaceTexture (TEX)"
	case FileTypeTexture:
		return "Texture (DDS/JPG)"
	case FileTypeSurface:
		return "Surface (SUR)"
	case FileTypeAnimationDone:
		return "AnimationDone (DSC)"
	case FileTypeAudio:
		return "Audio (WAV)"
	case FileTypeEnvCell:
		return "EnvCell (ENV)"
	case FileTypeTable:
		return "Table"
	case FileTypeClothing:
		return "Clothing (CLO)"
	case FileTypeScene:
		return "Scene (SCN)"
	case FileTypeRegion:
		return "Region (RGN)"
	case FileTypeLanguageString:
		return "LanguageString"
	case FileTypeFont:
		return "Font"
	case FileTypeLandblock:
		return "Landblock (Terrain)"
	case FileTypeLandblockInfo:
		return "LandblockInfo (Static)"
	case FileTypeIndoorCell:
		return "IndoorCell"
	default:
		return "Unknown"
	}
}
