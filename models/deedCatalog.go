package models

var DeedCatalog = []DeedCard{
	{Title: "Smile", Description: "Smile at someone today, a smile is also charity."},
	{Title: "Help at home", Description: "Help a family member with one of their chores."},
	{Title: "Surah Ikhlas three times", Description: "Recite Surah Al-Ikhlas three times."},
	{Title: "Pray for a friend", Description: "Make a sincere dua for one of your friends."},
	{Title: "Give sadaqah", Description: "Give a small charity to someone in need or to the masjid."},
	{Title: "Forgive someone", Description: "Forgive someone for the sake of Allah."},
	{Title: "One page of Quran", Description: "Read at least one page of the Quran."},
	{Title: "Istighfar 100 times", Description: "Say Astaghfirullah one hundred times."},
	{Title: "Call a relative", Description: "Call or message a relative you have not spoken to in a while."},
	{Title: "Share a reminder", Description: "Send someone a hadith or an ayah that moved you."},
	{Title: "Offer water", Description: "Offer someone a glass of cold water."},
	{Title: "A small kindness", Description: "Hold a door or help with a small task for a stranger."},
	{Title: "Begin with Bismillah", Description: "Begin every task today with Bismillah."},
	{Title: "Praise a good deed", Description: "Sincerely praise something good someone did."},
	{Title: "Pray for yourself", Description: "Ask Allah for something you truly need."},
	{Title: "Spread salam", Description: "Greet at least five people with salam today."},
	{Title: "Clean the masjid", Description: "Help clean the masjid or a shared space at home."},
	{Title: "Help an elder", Description: "Help an elderly person with something they need."},
	{Title: "Gentle with children", Description: "Spend time with a child and treat them with gentleness."},
	{Title: "Encourage someone", Description: "Say something encouraging to a person who is struggling."},
	{Title: "Serve your parents", Description: "Do one act of service for your parents today."},
	{Title: "Overlook a mistake", Description: "Let a small mistake of someone else pass without comment."},
	{Title: "Morning gratitude", Description: "Thank Allah for three blessings as soon as you wake up."},
	{Title: "Remember someone in dua", Description: "Name someone in your dua after a prayer today."},
	{Title: "Make someone laugh", Description: "Bring a moment of joy to someone's day."},
	{Title: "Ask for forgiveness", Description: "Ask Allah for forgiveness for your past sins."},
	{Title: "Secret help", Description: "Help someone without letting them know it was you."},
	{Title: "Thank your family", Description: "Thank the people at home for something they do for you."},
	{Title: "Give a gift", Description: "Give someone a small gift."},
	{Title: "Learn something", Description: "Learn one new thing about your deen today."},
	{Title: "Guard your tongue", Description: "Avoid backbiting for the entire day."},
	{Title: "Intend good", Description: "Renew your intention to help others whenever you can."},
	{Title: "Dua for patience", Description: "Ask Allah to grant you patience."},
	{Title: "Recite to someone", Description: "Recite some Quran aloud for a family member."},
	{Title: "Conceal a fault", Description: "Keep someone's fault hidden instead of exposing it."},
	{Title: "Dua for barakah", Description: "Ask Allah for barakah in your provision."},
	{Title: "Send kind words", Description: "Send an uplifting message to someone."},
	{Title: "Dua for health", Description: "Ask Allah for health for yourself and your family."},
	{Title: "Praise in public", Description: "Mention someone's good quality in front of others."},
	{Title: "Dua for guidance", Description: "Ask Allah for guidance on the straight path."},
	{Title: "Ask for dua", Description: "Ask a friend to remember you in their dua."},
	{Title: "Dua for righteous friends", Description: "Ask Allah to surround you with good company."},
	{Title: "Share an ayah", Description: "Share the meaning of an ayah with someone."},
	{Title: "Dua for strong iman", Description: "Ask Allah to make your faith firm."},
	{Title: "Serve tea", Description: "Make tea or a drink for someone else."},
	{Title: "Visit the sick", Description: "Visit or call someone who is unwell."},
	{Title: "Feed a fasting person", Description: "Provide iftar or food for someone."},
	{Title: "Feed an animal", Description: "Put out food or water for birds or animals."},
	{Title: "Remove harm from the path", Description: "Remove something harmful from a road or walkway."},
	{Title: "Morning adhkar", Description: "Recite the morning remembrances."},
	{Title: "Evening adhkar", Description: "Recite the evening remembrances."},
	{Title: "Sunnah before Fajr", Description: "Pray the two sunnah units before Fajr."},
	{Title: "Duha prayer", Description: "Pray Salat al-Duha in the forenoon."},
	{Title: "Ayat al-Kursi", Description: "Recite Ayat al-Kursi after every obligatory prayer."},
	{Title: "Salawat", Description: "Send blessings upon the Prophet one hundred times."},
	{Title: "Surah Al-Mulk", Description: "Recite Surah Al-Mulk before sleeping."},
	{Title: "Surah Al-Kahf", Description: "Recite Surah Al-Kahf, or part of it."},
	{Title: "Tasbih after prayer", Description: "Say SubhanAllah, Alhamdulillah and Allahu Akbar after each prayer."},
	{Title: "Early to the masjid", Description: "Arrive early for one congregational prayer."},
	{Title: "Wudu before sleep", Description: "Make wudu before going to bed."},
	{Title: "Sleep on the right side", Description: "Follow the sunnah of sleeping on your right side."},
	{Title: "Eat with the right hand", Description: "Eat every meal today with your right hand and Bismillah."},
	{Title: "Share your food", Description: "Share a meal or snack with someone."},
	{Title: "Thank a worker", Description: "Thank a cleaner, driver or shop worker sincerely."},
	{Title: "Tip generously", Description: "Be generous with someone who served you."},
	{Title: "Pay a debt early", Description: "Settle something you owe before it is due."},
	{Title: "Keep a promise", Description: "Fulfil a promise you made to someone."},
	{Title: "Apologise", Description: "Apologise to someone you wronged."},
	{Title: "Reconcile", Description: "Try to mend a broken relationship."},
	{Title: "Lower your gaze", Description: "Be mindful of what you look at today."},
	{Title: "Control your anger", Description: "Stay calm in a moment that would normally anger you."},
	{Title: "Speak good or stay silent", Description: "Say only what is good today."},
	{Title: "Avoid waste", Description: "Do not waste food or water today."},
	{Title: "Plant something", Description: "Plant a seed or care for a plant."},
	{Title: "Teach someone", Description: "Teach someone a dua or a short surah."},
	{Title: "Memorise an ayah", Description: "Memorise one new ayah."},
	{Title: "Read a hadith", Description: "Read and reflect on one hadith."},
	{Title: "Read the seerah", Description: "Read a page about the life of the Prophet."},
	{Title: "Listen to a lecture", Description: "Listen to a beneficial Islamic talk."},
	{Title: "Pray Tahajjud", Description: "Wake up in the last third of the night and pray."},
	{Title: "Voluntary fast", Description: "Fast on a Monday or Thursday."},
	{Title: "Dua for the ummah", Description: "Make dua for Muslims who are suffering."},
	{Title: "Dua for parents", Description: "Ask Allah to have mercy on your parents."},
	{Title: "Visit a grave", Description: "Visit a graveyard and remember the hereafter."},
	{Title: "Help a neighbour", Description: "Check on a neighbour and offer help."},
	{Title: "Gift to a neighbour", Description: "Send food or a gift to your neighbour."},
	{Title: "Volunteer", Description: "Volunteer an hour of your time for a good cause."},
	{Title: "Donate clothes", Description: "Give away clothes you no longer use."},
	{Title: "Donate a book", Description: "Give a beneficial book to someone."},
	{Title: "Sponsor a meal", Description: "Pay for a meal for someone in need."},
	{Title: "Counsel with kindness", Description: "Give sincere advice gently and privately."},
	{Title: "Accept an invitation", Description: "Accept an invitation from a fellow Muslim."},
	{Title: "Respond to a sneeze", Description: "Say Yarhamukallah when someone sneezes and praises Allah."},
	{Title: "Walk to the masjid", Description: "Walk to the masjid for one prayer."},
	{Title: "Pray in congregation", Description: "Pray every obligatory prayer in congregation today."},
	{Title: "Reflect before sleep", Description: "Spend five minutes reviewing your day before sleeping."},
	{Title: "Write a gratitude list", Description: "Write down ten things you are grateful for."},
	{Title: "Be patient in traffic", Description: "Stay patient and courteous on the road."},
	{Title: "Honest trade", Description: "Be completely honest in every transaction today."},
	{Title: "Smile at your family", Description: "Greet everyone at home with a smile and salam."},
}

var PrayedMessages = []string{
	"MashaAllah! Keep it up!",
	"Allah loves those who are consistent in prayer.",
	"Great job! May Allah accept your Salah.",
	"You are building a beautiful habit!",
	"Every prayer brings you closer to Allah.",
	"Consistency is the key to success!",
	"May your prayers bring you peace and blessings.",
	"You are inspiring! Keep going!",
	"BarakAllahu feek!",
}

var MissedMessages = []string{
	"Don't give up! Tomorrow is a new day.",
	"Every day is a new chance to improve.",
	"Allah is Most Merciful. Try again!",
	"Missing one prayer doesn't define you.",
	"Stay motivated! You can do it.",
	"Reflect, reset, and keep moving forward.",
	"Your effort counts. Never lose hope.",
}

var TahajjudMessages = []string{
	"SubhanAllah! Tahajjud is a special gift.",
	"You woke up for Tahajjud! May Allah grant your duas.",
	"The night prayer brings light to your heart.",
	"You are among the blessed who remember Allah at night.",
	"Tahajjud is a sign of true devotion. Keep it up!",
	"May Allah answer your secret prayers.",
	"You are building a powerful connection with Allah.",
}
