package model

type RoomType string

const (
	RoomExteriorFront RoomType = "exterior-front"
	RoomEntryway      RoomType = "entryway"
	RoomLivingRoom    RoomType = "living-room"
	RoomKitchen       RoomType = "kitchen"
	RoomDiningRoom    RoomType = "dining-room"
	RoomBedroom       RoomType = "bedroom"
	RoomBathroom      RoomType = "bathroom"
	RoomExteriorBack  RoomType = "exterior-back"
	RoomOther         RoomType = "other"
)

func (r RoomType) Valid() bool {
	switch r {
	case RoomExteriorFront, RoomEntryway, RoomLivingRoom, RoomKitchen,
		RoomDiningRoom, RoomBedroom, RoomBathroom, RoomExteriorBack, RoomOther:
		return true
	}
	return false
}

func (r RoomType) Label() string {
	switch r {
	case RoomExteriorFront:
		return "Front Exterior"
	case RoomEntryway:
		return "Entryway"
	case RoomLivingRoom:
		return "Living Room"
	case RoomKitchen:
		return "Kitchen"
	case RoomDiningRoom:
		return "Dining Room"
	case RoomBedroom:
		return "Bedroom"
	case RoomBathroom:
		return "Bathroom"
	case RoomExteriorBack:
		return "Backyard / Patio"
	default:
		return "Other"
	}
}

// DefaultNegativePrompt is sent with every clip generation request to keep
// the motion model from distorting the scene.
const DefaultNegativePrompt = "blur, distortion, morphing, warping, flicker, low quality, artifacts, watermark, text overlay, people appearing"

// DefaultMotionPrompt returns the camera-motion description used when a clip
// has no explicit motion prompt.
func (r RoomType) DefaultMotionPrompt() string {
	switch r {
	case RoomExteriorFront:
		return "Slow cinematic push-in towards the front of the house, steady camera, golden hour light"
	case RoomEntryway:
		return "Gentle forward dolly through the entryway, inviting movement, natural light"
	case RoomLivingRoom:
		return "Smooth lateral pan across the living room, soft parallax, sunlight through windows"
	case RoomKitchen:
		return "Slow glide along the kitchen counters, subtle depth, bright even lighting"
	case RoomDiningRoom:
		return "Slow orbit around the dining table, warm ambient light, calm motion"
	case RoomBedroom:
		return "Gentle push-in towards the bed, relaxed pace, soft morning light"
	case RoomBathroom:
		return "Slow reveal pan across the bathroom fixtures, clean reflections, spa-like calm"
	case RoomExteriorBack:
		return "Wide slow pan across the backyard and patio, natural daylight, leaves moving gently"
	default:
		return "Slow cinematic camera movement, steady pace, natural light"
	}
}
