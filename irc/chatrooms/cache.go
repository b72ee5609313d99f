package chatrooms

import (
	"empathy/birdbase"
	"empathy/logger"
	"encoding/json"
	"errors"
)

// InfoCacheHours is how long cached room info stays valid
const InfoCacheHours = 24

// InfoCache keeps the last known RoomInfo of chatrooms across runs
type InfoCache struct {
	db *birdbase.DB
}

func NewInfoCache(db *birdbase.DB) *InfoCache {
	return &InfoCache{db: db}
}

func infoKey(c *Chatroom) string {
	return "roominfo:" + c.account.UniqueName + "/" + c.room
}

func (ic *InfoCache) Load(c *Chatroom) (RoomInfo, bool) {
	var info RoomInfo

	data, err := ic.db.Get(infoKey(c))
	if err != nil {
		if !errors.Is(err, birdbase.ErrNotFound) {
			logger.Chatroom(c.account.UniqueName, c.room).Debug("Failed to get room info", "error", err)
		}
		return info, false
	}

	if err := json.Unmarshal(data, &info); err != nil {
		logger.Chatroom(c.account.UniqueName, c.room).Error("Failed to unmarshal room info", "error", err)
		return info, false
	}

	return info, true
}

func (ic *InfoCache) Store(c *Chatroom, info RoomInfo) error {
	data, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return ic.db.PutBytesExpireHours(infoKey(c), data, InfoCacheHours)
}

func (ic *InfoCache) Forget(c *Chatroom) {
	if !ic.db.Has(infoKey(c)) {
		return
	}
	if err := ic.db.Delete(infoKey(c)); err != nil {
		logger.Chatroom(c.account.UniqueName, c.room).Error("Failed to delete room info", "error", err)
	}
}
