package cache

import "github.com/relaywire/relay-go/model"

// updateEmojiUpsert inserts or replaces one guild-owned emoji.
func (c *Cache) updateEmojiUpsert(guildID model.GuildID, emoji model.Emoji) {
	emoji.GuildID = guildID
	c.emojis.Set(emoji.ID, emoji)
	setAdd(c.guildEmojis, guildID, emoji.ID)
}

// updateEmojisReplace implements GuildEmojisUpdate: the entire emoji list
// for a guild is replaced wholesale, so the reverse index is rebuilt from
// scratch rather than diffed.
func (c *Cache) updateEmojisReplace(e model.EmojisUpdate) {
	if !c.enabled(model.ResourceEmoji) {
		return
	}

	for _, emojiID := range setKeys(c.guildEmojis, e.GuildID) {
		c.emojis.Delete(emojiID)
	}

	c.guildEmojis.Delete(e.GuildID)

	for _, em := range e.Emojis {
		c.updateEmojiUpsert(e.GuildID, em)
	}
}

// updateStickerUpsert inserts or replaces one guild-owned sticker.
func (c *Cache) updateStickerUpsert(guildID model.GuildID, sticker model.Sticker) {
	sticker.GuildID = guildID
	c.stickers.Set(sticker.ID, sticker)
	setAdd(c.guildStickers, guildID, sticker.ID)
}

// updateStickersReplace implements GuildStickersUpdate: replace-whole-list,
// identical in shape to updateEmojisReplace.
func (c *Cache) updateStickersReplace(e model.StickersUpdate) {
	if !c.enabled(model.ResourceSticker) {
		return
	}

	for _, stickerID := range setKeys(c.guildStickers, e.GuildID) {
		c.stickers.Delete(stickerID)
	}

	c.guildStickers.Delete(e.GuildID)

	for _, st := range e.Stickers {
		c.updateStickerUpsert(e.GuildID, st)
	}
}

// updateIntegrationUpsert inserts or replaces a guild-linked integration.
func (c *Cache) updateIntegrationUpsert(guildID model.GuildID, integration model.Integration) {
	if !c.enabled(model.ResourceIntegration) {
		return
	}

	integration.GuildID = guildID
	c.integrations.Set(integration.ID, integration)
	setAdd(c.guildIntegrations, guildID, integration.ID)
}

// updateIntegrationDelete removes an integration from its guild.
func (c *Cache) updateIntegrationDelete(e model.IntegrationDelete) {
	if !c.enabled(model.ResourceIntegration) {
		return
	}

	c.integrations.Delete(e.ID)
	setRemove(c.guildIntegrations, e.GuildID, e.ID)
}

// updateStageInstanceUpsert inserts or replaces a live stage's topic
// metadata.
func (c *Cache) updateStageInstanceUpsert(si model.StageInstance) {
	if !c.enabled(model.ResourceStageInstance) {
		return
	}

	c.stageInstances.Set(si.ID, si)
	setAdd(c.guildStageInstances, si.GuildID, si.ID)
}

// updateStageInstanceDelete removes a stage instance.
func (c *Cache) updateStageInstanceDelete(e model.StageInstanceDelete) {
	if !c.enabled(model.ResourceStageInstance) {
		return
	}

	c.stageInstances.Delete(e.ID)
	setRemove(c.guildStageInstances, e.GuildID, e.ID)
}
