package app

// howToMarkdown is rendered by the UI's markdown renderer in the help
// overlay.
const howToMarkdown = `# How to Play

Flip two cards and find the matching pair!

- Move with the **arrow keys** and flip with **enter**.
- A matched pair stays open. A wrong pair turns back over.
- Fewer moves means more stars: up to **three** per level.
- Stars open new categories and buy new card backs in the shop.
- Play every day to grow your streak!
`
